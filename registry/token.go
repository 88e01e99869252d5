package registry

import "time"

// Token is the stored state of one uniquely identified asset. Extension
// is an opaque payload the registry stores and returns without ever
// inspecting it.
type Token struct {
	Id        string
	Owner     string
	TokenURI  string
	Extension []byte
	Approvals []Approval
}

// Approval grants a spender transfer rights over one token until it
// expires. A token holds at most one approval per spender.
type Approval struct {
	Spender string
	Expires Expiration
}

type CollectionMetadata struct {
	Name      string
	Symbol    string
	UpdatedAt time.Time
}

// Attribute is one entry of the schema-less collection extension. Each
// attribute is persisted under its own key so updates stay partial.
type Attribute struct {
	Key   string `toml:"key"`
	Value string `toml:"value"`
}

// Ownership is the state of one privileged role slot. PendingOwner and
// PendingExpiry are set and cleared together.
type Ownership struct {
	Owner         string
	PendingOwner  string
	PendingExpiry Expiration
}

type OwnerOfResponse struct {
	Owner     string
	Approvals []Approval
}

type NftInfoResponse struct {
	TokenURI  string
	Extension []byte
}

type AllNftInfoResponse struct {
	Access OwnerOfResponse
	Info   NftInfoResponse
}

type CollectionMetadataAndExtension struct {
	Name       string
	Symbol     string
	UpdatedAt  time.Time
	Attributes []Attribute
}
