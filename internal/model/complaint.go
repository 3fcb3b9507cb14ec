package model

// Complaint represents a row in the `complaints` table. ComplaintType is a
// code into the `complaints_type` dictionary table; the application does not
// enforce the foreign key beyond what the schema declares.
type Complaint struct {
	ID            uint64 `json:"id"`             // complaints.id
	Name          string `json:"name"`           // complaints.name
	Email         string `json:"email"`          // complaints.email
	Phone         string `json:"phone"`          // complaints.phone
	City          string `json:"city"`           // complaints.city
	State         string `json:"state"`          // complaints.state
	ComplaintType int64  `json:"complaint_type"` // complaints.complaint_type
	ComplaintText string `json:"complaint_text"` // complaints.complaint_text
}

// ComplaintType maps a numeric complaint code to its dictionary label.
type ComplaintType struct {
	ID            uint64 `json:"id"`             // complaints_type.id
	ComplaintType int64  `json:"complaint_type"` // complaints_type.complaint_type
	Dictionary    string `json:"dictionary"`     // complaints_type.dictionary
}
