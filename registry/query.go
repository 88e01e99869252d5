package registry

import "fmt"

const (
	DefaultLimit = 10
	MaxLimit     = 1000
)

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}

// humanizeApproval shapes one approval for a response. Today it passes
// the value through unchanged, response redaction would go here without
// touching storage.
func humanizeApproval(a Approval) Approval {
	return Approval{Spender: a.Spender, Expires: a.Expires}
}

func humanizeApprovals(block BlockContext, token *Token, includeExpired bool) []Approval {
	approvals := make([]Approval, 0, len(token.Approvals))
	for _, a := range token.Approvals {
		if includeExpired || !a.Expires.IsExpired(block) {
			approvals = append(approvals, humanizeApproval(a))
		}
	}
	return approvals
}

func (r *Registry) OwnerOf(block BlockContext, tokenId string, includeExpired bool) (*OwnerOfResponse, error) {
	token, err := r.readExistingToken(tokenId)
	if err != nil {
		return nil, err
	}
	return &OwnerOfResponse{
		Owner:     token.Owner,
		Approvals: humanizeApprovals(block, token, includeExpired),
	}, nil
}

// Approval looks up the grant for one spender. The owner is implicitly
// and permanently authorized over their own token, so a matching
// spender yields a synthetic never-expiring approval.
func (r *Registry) Approval(block BlockContext, tokenId, spender string, includeExpired bool) (*Approval, error) {
	token, err := r.readExistingToken(tokenId)
	if err != nil {
		return nil, err
	}
	if token.Owner == spender {
		a := humanizeApproval(Approval{Spender: spender, Expires: NeverExpires()})
		return &a, nil
	}
	for _, a := range token.Approvals {
		if a.Spender != spender {
			continue
		}
		if includeExpired || !a.Expires.IsExpired(block) {
			h := humanizeApproval(a)
			return &h, nil
		}
	}
	return nil, fmt.Errorf("%w: approval for %s on token %s", ErrNotFound, spender, tokenId)
}

func (r *Registry) Approvals(block BlockContext, tokenId string, includeExpired bool) ([]Approval, error) {
	token, err := r.readExistingToken(tokenId)
	if err != nil {
		return nil, err
	}
	return humanizeApprovals(block, token, includeExpired), nil
}

func (r *Registry) Operator(block BlockContext, owner, operator string, includeExpired bool) (*Approval, error) {
	expires, err := r.store.ReadOperator(owner, operator)
	if err != nil {
		return nil, err
	}
	if expires == nil || (!includeExpired && expires.IsExpired(block)) {
		return nil, fmt.Errorf("%w: operator %s for %s", ErrNotFound, operator, owner)
	}
	a := humanizeApproval(Approval{Spender: operator, Expires: *expires})
	return &a, nil
}

// AllOperators pages through an owner's operator grants in ascending
// operator order. Expired grants are filtered before the limit applies.
func (r *Registry) AllOperators(block BlockContext, owner string, includeExpired bool, startAfter string, limit int) ([]Approval, error) {
	limit = clampLimit(limit)
	all, err := r.store.ListOperators(owner, startAfter, 0)
	if err != nil {
		return nil, err
	}
	operators := make([]Approval, 0, limit)
	for _, a := range all {
		if !includeExpired && a.Expires.IsExpired(block) {
			continue
		}
		operators = append(operators, humanizeApproval(a))
		if len(operators) == limit {
			break
		}
	}
	return operators, nil
}

func (r *Registry) NumTokens() (uint64, error) {
	return r.store.ReadTokenCount()
}

func (r *Registry) NftInfo(tokenId string) (*NftInfoResponse, error) {
	token, err := r.readExistingToken(tokenId)
	if err != nil {
		return nil, err
	}
	return &NftInfoResponse{TokenURI: token.TokenURI, Extension: token.Extension}, nil
}

func (r *Registry) AllNftInfo(block BlockContext, tokenId string, includeExpired bool) (*AllNftInfoResponse, error) {
	token, err := r.readExistingToken(tokenId)
	if err != nil {
		return nil, err
	}
	return &AllNftInfoResponse{
		Access: OwnerOfResponse{
			Owner:     token.Owner,
			Approvals: humanizeApprovals(block, token, includeExpired),
		},
		Info: NftInfoResponse{TokenURI: token.TokenURI, Extension: token.Extension},
	}, nil
}

func (r *Registry) Tokens(owner, startAfter string, limit int) ([]string, error) {
	return r.store.ListTokenIdsForOwner(owner, startAfter, clampLimit(limit))
}

func (r *Registry) AllTokens(startAfter string, limit int) ([]string, error) {
	return r.store.ListTokenIds(startAfter, clampLimit(limit))
}

func (r *Registry) CollectionMetadata() (*CollectionMetadata, error) {
	cm, err := r.store.ReadCollectionMetadata()
	if err != nil {
		return nil, err
	}
	if cm == nil {
		return nil, fmt.Errorf("%w: collection metadata", ErrNotFound)
	}
	return cm, nil
}

func (r *Registry) CollectionMetadataExtension() ([]Attribute, error) {
	return r.store.ListCollectionAttributes()
}

func (r *Registry) CollectionMetadataAndExtension() (*CollectionMetadataAndExtension, error) {
	cm, err := r.CollectionMetadata()
	if err != nil {
		return nil, err
	}
	attributes, err := r.store.ListCollectionAttributes()
	if err != nil {
		return nil, err
	}
	return &CollectionMetadataAndExtension{
		Name:       cm.Name,
		Symbol:     cm.Symbol,
		UpdatedAt:  cm.UpdatedAt,
		Attributes: attributes,
	}, nil
}

func (r *Registry) MinterOwnership() (*Ownership, error) {
	return r.readRole(RoleMinter)
}

func (r *Registry) CreatorOwnership() (*Ownership, error) {
	return r.readRole(RoleCreator)
}

// WithdrawAddress returns the empty string when none is set.
func (r *Registry) WithdrawAddress() (string, error) {
	return r.store.ReadWithdrawAddress()
}
