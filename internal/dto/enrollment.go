package dto

// StudentInput is the create/update payload for students. Dates travel as YYYY-MM-DD.
type StudentInput struct {
	FirstName   string `json:"first_name" example:"Lucas"`
	LastName    string `json:"last_name" example:"Gama"`
	Email       string `json:"email" example:"lucas@gmail.com"`
	DateOfBirth string `json:"date_of_birth" example:"1997-08-15"`
}

// ClassInput is the create/update payload for classes.
type ClassInput struct {
	Name        string `json:"name" example:"Portuguese"`
	Description string `json:"description" example:"Study of Portuguese language"`
	StartDate   string `json:"start_date" example:"2024-09-11"`
	EndDate     string `json:"end_date" example:"2024-10-11"`
}

// RosterFormat selects the encoding of a class roster export.
type RosterFormat string

// Supported roster formats.
const (
	RosterFormatCSV  RosterFormat = "csv"
	RosterFormatPDF  RosterFormat = "pdf"
	RosterFormatXLSX RosterFormat = "xlsx"
)

// RosterFile is a rendered roster ready for download.
type RosterFile struct {
	Filename    string
	ContentType string
	Body        []byte
}
