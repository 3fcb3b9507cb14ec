package model

// Petition represents a row in the `petition` table. Each petition belongs
// to exactly one owning user via UserID. Image holds an opaque reference
// (base64 payload or URL) supplied by the client; the server does not
// interpret it.
type Petition struct {
	ID           uint64 `json:"id"`            // petition.id
	UserID       uint64 `json:"user_id"`       // petition.user_id (owner)
	PetitionName string `json:"petition_name"` // petition.petition_name
	PetitionText string `json:"petition_text"` // petition.petition_text
	Image        string `json:"image"`         // petition.image
}

// PetitionSummary is the public browse projection of a petition: the owner
// id is withheld and the current signature count is included so guests can
// gauge support before signing.
type PetitionSummary struct {
	ID             uint64 `json:"id"`
	PetitionName   string `json:"petition_name"`
	PetitionText   string `json:"petition_text"`
	Image          string `json:"image"`
	SignatureCount uint64 `json:"signature_count"`
}
