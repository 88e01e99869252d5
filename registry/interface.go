package registry

// Store is the storage handle supplied by the host. Implementations must
// cover each compound mutation with a single atomic transaction so the
// primary record, the owner index and the token count never diverge.
// The store performs no validation, callers enforce correctness.
type Store interface {
	WriteProperty(key, val []byte) error
	ReadProperty(key []byte) ([]byte, error)

	ReadToken(tokenId string) (*Token, error)
	CreateToken(token *Token) error
	UpdateToken(token *Token, oldOwner string) error
	DeleteToken(token *Token) error
	ListTokenIds(startAfter string, limit int) ([]string, error)
	ListTokenIdsForOwner(owner, startAfter string, limit int) ([]string, error)
	ReadTokenCount() (uint64, error)

	ReadOperator(owner, operator string) (*Expiration, error)
	WriteOperator(owner, operator string, expires Expiration) error
	DeleteOperator(owner, operator string) error
	ListOperators(owner, startAfter string, limit int) ([]Approval, error)

	ReadOwnership(role string) (*Ownership, error)
	WriteOwnership(role string, os *Ownership) error

	ReadCollectionMetadata() (*CollectionMetadata, error)
	ListCollectionAttributes() ([]Attribute, error)
	CreateCollection(cm *CollectionMetadata, attributes []Attribute, minter, creator *Ownership, withdrawAddress string) error
	UpdateCollection(cm *CollectionMetadata, upsert []Attribute, remove []string) error

	ReadWithdrawAddress() (string, error)
	WriteWithdrawAddress(address string) error
	DeleteWithdrawAddress() error
}
