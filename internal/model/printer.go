package model

type Printer struct {
	BaseModel
	CompanyID    string  `db:"company_id" json:"company_id"`
	Name         string  `db:"name" json:"name"`
	Model        *string `db:"model" json:"model"`
	SerialNumber *string `db:"serial_number" json:"serial_number"`
	Location     *string `db:"location" json:"location"`
	IsColor      bool    `db:"is_color" json:"is_color"`
	IsActive     bool    `db:"is_active" json:"is_active"`
}
