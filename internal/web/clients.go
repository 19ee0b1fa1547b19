package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"estateClientManagement/internal/apperr"
	"estateClientManagement/models"
)

// clientPayload is the create/import input: every field optional, block
// defaulting to "A" when the key is absent (an explicit "" stays empty).
type clientPayload struct {
	ID          *string `json:"id"`
	Name        *string `json:"name"`
	Contact     *string `json:"contact"`
	Society     *string `json:"society"`
	PlotNo      *string `json:"plotNo"`
	Block       *string `json:"block"`
	Price       *string `json:"price"`
	Size        *string `json:"size"`
	Date        *string `json:"date"`
	Description *string `json:"description"`
}

func (p *clientPayload) toClient() *models.Client {
	deref := func(v *string) string {
		if v == nil {
			return ""
		}
		return *v
	}
	block := "A"
	if p.Block != nil {
		block = *p.Block
	}
	return &models.Client{
		ID:          deref(p.ID),
		Name:        deref(p.Name),
		Contact:     deref(p.Contact),
		Society:     deref(p.Society),
		PlotNo:      deref(p.PlotNo),
		Block:       block,
		Price:       deref(p.Price),
		Size:        deref(p.Size),
		Date:        deref(p.Date),
		Description: deref(p.Description),
	}
}

func isNotFound(err error) bool   { return errors.Is(err, apperr.ErrNotFound) }
func isValidation(err error) bool { return errors.Is(err, apperr.ErrValidation) }

// decodeJSON unmarshals the request body into out, requiring the top-level
// value to open with the given byte ('{' or '['). Bodies like `null`
// unmarshal cleanly into structs and slices without an error, so the shape
// check has to happen on the raw payload.
func decodeJSON(c *gin.Context, open byte, out any) error {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return err
	}
	raw = bytes.TrimLeft(raw, " \t\r\n")
	if len(raw) == 0 || raw[0] != open {
		return errors.New("unexpected JSON shape")
	}
	return json.Unmarshal(raw, out)
}

func (s *Server) listClients(c *gin.Context) {
	clients, err := s.Clients.List(c.Request.Context())
	if err != nil {
		s.Log.Error("list clients", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}
	out := make([]models.ClientDTO, 0, len(clients))
	for _, cl := range clients {
		out = append(out, cl.DTO())
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) createClient(c *gin.Context) {
	var payload clientPayload
	if err := decodeJSON(c, '{', &payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No JSON data"})
		return
	}
	created, err := s.Clients.Create(c.Request.Context(), payload.toClient())
	if err != nil {
		if isValidation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		s.Log.Error("create client", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}
	c.JSON(http.StatusCreated, created.DTO())
}

func (s *Server) updateClient(c *gin.Context) {
	var patch models.ClientPatch
	if err := decodeJSON(c, '{', &patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No JSON data"})
		return
	}
	updated, err := s.Clients.Update(c.Request.Context(), c.Param("id"), &patch)
	if err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
			return
		}
		s.Log.Error("update client", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}
	c.JSON(http.StatusOK, updated.DTO())
}

func (s *Server) deleteClient(c *gin.Context) {
	if err := s.Clients.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if isNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Client not found"})
			return
		}
		s.Log.Error("delete client", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Client deleted successfully"})
}

// importClients replaces the whole table with the posted array. This is a
// destructive full replace, not a merge.
func (s *Server) importClients(c *gin.Context) {
	var payloads []clientPayload
	if err := decodeJSON(c, '[', &payloads); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Expected array of clients"})
		return
	}
	items := make([]*models.Client, 0, len(payloads))
	for i := range payloads {
		items = append(items, payloads[i].toClient())
	}
	n, err := s.Clients.ReplaceAll(c.Request.Context(), items)
	if err != nil {
		if isValidation(err) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		s.Log.Error("import clients", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"imported": n})
}
