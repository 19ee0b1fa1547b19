package models

import "time"

// Client represents a property client record.
// The id is caller-supplied or derived from a millisecond timestamp at
// creation time; every other field is independently optional free text.
type Client struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Contact     string    `db:"contact" json:"contact"`
	Society     string    `db:"society" json:"society"`
	PlotNo      string    `db:"plot_no" json:"plotNo"`
	Block       string    `db:"block" json:"block"`
	Price       string    `db:"price" json:"price"`
	Size        string    `db:"size" json:"size"`
	Date        string    `db:"date" json:"date"`
	Description string    `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"-"`
}

// ClientDTO is the JSON shape the API serves for a client.
type ClientDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Contact     string `json:"contact"`
	Society     string `json:"society"`
	PlotNo      string `json:"plotNo"`
	Block       string `json:"block"`
	Price       string `json:"price"`
	Size        string `json:"size"`
	Date        string `json:"date"`
	Description string `json:"description"`
}

// DTO converts the stored row to its API shape. An empty block serializes
// as "A", matching the table default.
func (c *Client) DTO() ClientDTO {
	block := c.Block
	if block == "" {
		block = "A"
	}
	return ClientDTO{
		ID:          c.ID,
		Name:        c.Name,
		Contact:     c.Contact,
		Society:     c.Society,
		PlotNo:      c.PlotNo,
		Block:       block,
		Price:       c.Price,
		Size:        c.Size,
		Date:        c.Date,
		Description: c.Description,
	}
}

// ClientPatch is a partial update: nil means "leave unchanged", an explicit
// empty string clears the field. The id of a client never changes.
type ClientPatch struct {
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

// Apply overwrites the client's fields with the patch's non-nil values.
func (p *ClientPatch) Apply(c *Client) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Contact != nil {
		c.Contact = *p.Contact
	}
	if p.Society != nil {
		c.Society = *p.Society
	}
	if p.PlotNo != nil {
		c.PlotNo = *p.PlotNo
	}
	if p.Block != nil {
		c.Block = *p.Block
	}
	if p.Price != nil {
		c.Price = *p.Price
	}
	if p.Size != nil {
		c.Size = *p.Size
	}
	if p.Date != nil {
		c.Date = *p.Date
	}
	if p.Description != nil {
		c.Description = *p.Description
	}
}
