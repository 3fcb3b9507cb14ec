// Package queue defines message payloads exchanged over the message broker.
package queue

// SignatureValidatedEvent is published when a signature is successfully
// validated. It contains enough information for downstream consumers to
// log, notify, or feed analytics without querying the primary database.
type SignatureValidatedEvent struct {
	SignatureID  uint64 `json:"signature_id"`
	PetitionID   uint64 `json:"petition_id"`
	PetitionName string `json:"petition_name"`
	SignerName   string `json:"signer_name"`
	City         string `json:"city"`
	State        string `json:"state"`
	ValidatedAt  string `json:"validated_at"`
}
