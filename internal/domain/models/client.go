package models

// Client is the read-only projection of a document in the clients collection.
// Documents and Cars hold opaque references; they are not resolved here.
type Client struct {
	ID        string   `json:"_id"`
	Name      string   `json:"name"`
	Email     string   `json:"email"`
	Phone     string   `json:"phone"`
	Address   string   `json:"address"`
	Documents []string `json:"documents"`
	Cars      []string `json:"cars"`
}
