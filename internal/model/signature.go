package model

// Signature represents a row in the `signature` table. A signature is
// submitted publicly (no account required), so UserID is nullable and only
// set when the submitter was authenticated at creation time.
// ValidatedSignature always starts false and is flipped to true exactly
// once through the validation endpoint.
type Signature struct {
	ID                 uint64  `json:"id"`                  // signature.id
	PetitionID         uint64  `json:"petition_id"`         // signature.petition_id
	UserID             *uint64 `json:"user_id,omitempty"`   // signature.user_id (nullable signer)
	Name               string  `json:"name"`                // signature.name
	Email              string  `json:"email"`               // signature.email
	Phone              string  `json:"phone"`               // signature.phone
	City               string  `json:"city"`                // signature.city
	State              string  `json:"state"`               // signature.state
	ShowSignature      bool    `json:"show_signature"`      // signature.show_signature
	ValidatedSignature bool    `json:"validated_signature"` // signature.validated_signature
	CanBeContacted     bool    `json:"can_be_contacted"`    // signature.can_be_contacted
}
