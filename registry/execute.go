package registry

import (
	"fmt"

	"github.com/MixinNetwork/mixin/logger"
	"github.com/gofrs/uuid"
	"github.com/shopspring/decimal"
)

// ReceiptMessage is the follow-up payload SendNft hands back to the
// host for delivery to the receiving contract. The Msg bytes are opaque
// to the registry.
type ReceiptMessage struct {
	Id       string
	Contract string
	Sender   string
	TokenId  string
	Msg      []byte
}

type Coin struct {
	Denom  string
	Amount decimal.Decimal
}

// PaymentMessage routes withdrawn funds to the stored withdraw address,
// never to the caller.
type PaymentMessage struct {
	Id      string
	Address string
	Amount  Coin
}

// CollectionMetadataUpdate carries a partial metadata update. Nil name
// or symbol leave the stored value unchanged. Attributes are upserted
// per key, RemoveAttributes deletes.
type CollectionMetadataUpdate struct {
	Name             *string
	Symbol           *string
	Attributes       []Attribute
	RemoveAttributes []string
}

func (r *Registry) Mint(caller string, block BlockContext, tokenId, owner, tokenURI string, extension []byte) error {
	if tokenId == "" || owner == "" {
		return fmt.Errorf("%w: token id and owner required", ErrInvalidInput)
	}
	err := r.assertRole(RoleMinter, caller)
	if err != nil {
		return err
	}
	old, err := r.store.ReadToken(tokenId)
	if err != nil {
		return err
	}
	if old != nil {
		return fmt.Errorf("%w: token %s", ErrAlreadyExists, tokenId)
	}
	err = r.store.CreateToken(&Token{
		Id:        tokenId,
		Owner:     owner,
		TokenURI:  tokenURI,
		Extension: extension,
	})
	if err != nil {
		return err
	}
	logger.Verbosef("registry.Mint(%s, %s)\n", tokenId, owner)
	return nil
}

func (r *Registry) TransferNft(caller string, block BlockContext, tokenId, recipient string) error {
	if recipient == "" {
		return fmt.Errorf("%w: empty recipient", ErrInvalidInput)
	}
	token, err := r.readExistingToken(tokenId)
	if err != nil {
		return err
	}
	err = r.checkCanSend(token, caller, block)
	if err != nil {
		return err
	}
	oldOwner := token.Owner
	token.Owner = recipient
	token.Approvals = nil
	err = r.store.UpdateToken(token, oldOwner)
	if err != nil {
		return err
	}
	logger.Verbosef("registry.TransferNft(%s, %s -> %s)\n", tokenId, oldOwner, recipient)
	return nil
}

// SendNft transfers like TransferNft, the recipient being a contract,
// and returns the receipt the host should deliver to it.
func (r *Registry) SendNft(caller string, block BlockContext, tokenId, contract string, msg []byte) (*ReceiptMessage, error) {
	err := r.TransferNft(caller, block, tokenId, contract)
	if err != nil {
		return nil, err
	}
	return &ReceiptMessage{
		Id:       uuid.Must(uuid.NewV4()).String(),
		Contract: contract,
		Sender:   caller,
		TokenId:  tokenId,
		Msg:      msg,
	}, nil
}

func (r *Registry) Approve(caller string, block BlockContext, spender, tokenId string, expires Expiration) error {
	if spender == "" {
		return fmt.Errorf("%w: empty spender", ErrInvalidInput)
	}
	if expires.IsExpired(block) {
		return fmt.Errorf("%w: approval expires in the past", ErrExpired)
	}
	token, err := r.readExistingToken(tokenId)
	if err != nil {
		return err
	}
	err = r.checkCanApprove(token, caller, block)
	if err != nil {
		return err
	}
	approvals := make([]Approval, 0, len(token.Approvals)+1)
	for _, a := range token.Approvals {
		if a.Spender != spender {
			approvals = append(approvals, a)
		}
	}
	token.Approvals = append(approvals, Approval{Spender: spender, Expires: expires})
	return r.store.UpdateToken(token, token.Owner)
}

func (r *Registry) Revoke(caller string, block BlockContext, spender, tokenId string) error {
	token, err := r.readExistingToken(tokenId)
	if err != nil {
		return err
	}
	err = r.checkCanApprove(token, caller, block)
	if err != nil {
		return err
	}
	approvals := token.Approvals[:0]
	for _, a := range token.Approvals {
		if a.Spender != spender {
			approvals = append(approvals, a)
		}
	}
	if len(approvals) == len(token.Approvals) {
		return nil
	}
	token.Approvals = approvals
	return r.store.UpdateToken(token, token.Owner)
}

func (r *Registry) ApproveAll(caller string, block BlockContext, operator string, expires Expiration) error {
	if operator == "" {
		return fmt.Errorf("%w: empty operator", ErrInvalidInput)
	}
	if expires.IsExpired(block) {
		return fmt.Errorf("%w: operator approval expires in the past", ErrExpired)
	}
	return r.store.WriteOperator(caller, operator, expires)
}

func (r *Registry) RevokeAll(caller string, operator string) error {
	return r.store.DeleteOperator(caller, operator)
}

// Burn removes the token, its owner index entry and decrements the
// count. Operator approvals are owner scoped and survive.
func (r *Registry) Burn(caller string, block BlockContext, tokenId string) error {
	token, err := r.readExistingToken(tokenId)
	if err != nil {
		return err
	}
	err = r.checkCanSend(token, caller, block)
	if err != nil {
		return err
	}
	err = r.store.DeleteToken(token)
	if err != nil {
		return err
	}
	logger.Verbosef("registry.Burn(%s)\n", tokenId)
	return nil
}

func (r *Registry) UpdateCollectionMetadata(caller string, block BlockContext, update *CollectionMetadataUpdate) error {
	err := r.assertRole(RoleCreator, caller)
	if err != nil {
		return err
	}
	cm, err := r.store.ReadCollectionMetadata()
	if err != nil {
		return err
	}
	if cm == nil {
		return fmt.Errorf("%w: collection metadata", ErrNotFound)
	}
	if update.Name != nil {
		cm.Name = *update.Name
	}
	if update.Symbol != nil {
		cm.Symbol = *update.Symbol
	}
	if cm.Name == "" || cm.Symbol == "" {
		return fmt.Errorf("%w: collection name and symbol required", ErrInvalidInput)
	}
	for _, a := range update.Attributes {
		if a.Key == "" {
			return fmt.Errorf("%w: empty attribute key", ErrInvalidInput)
		}
	}
	cm.UpdatedAt = block.Time
	return r.store.UpdateCollection(cm, update.Attributes, update.RemoveAttributes)
}

// UpdateNftInfo replaces a token's URI and extension. Only the creator
// may curate metadata, the owner's transfer rights and approvals are
// untouched.
func (r *Registry) UpdateNftInfo(caller string, block BlockContext, tokenId, tokenURI string, extension []byte) error {
	err := r.assertRole(RoleCreator, caller)
	if err != nil {
		return err
	}
	token, err := r.readExistingToken(tokenId)
	if err != nil {
		return err
	}
	token.TokenURI = tokenURI
	token.Extension = extension
	return r.store.UpdateToken(token, token.Owner)
}

func (r *Registry) SetWithdrawAddress(caller, address string) error {
	err := r.assertRole(RoleCreator, caller)
	if err != nil {
		return err
	}
	if address == "" {
		return fmt.Errorf("%w: empty withdraw address", ErrInvalidInput)
	}
	return r.store.WriteWithdrawAddress(address)
}

func (r *Registry) RemoveWithdrawAddress(caller string) error {
	err := r.assertRole(RoleCreator, caller)
	if err != nil {
		return err
	}
	address, err := r.store.ReadWithdrawAddress()
	if err != nil {
		return err
	}
	if address == "" {
		return fmt.Errorf("%w: withdraw address", ErrNotFound)
	}
	return r.store.DeleteWithdrawAddress()
}

// WithdrawFunds may be called by anyone once an address is set, the
// payment is routed to that address.
func (r *Registry) WithdrawFunds(caller string, amount Coin) (*PaymentMessage, error) {
	if amount.Denom == "" || amount.Amount.Sign() <= 0 {
		return nil, fmt.Errorf("%w: invalid amount %s %s", ErrInvalidInput, amount.Amount, amount.Denom)
	}
	address, err := r.store.ReadWithdrawAddress()
	if err != nil {
		return nil, err
	}
	if address == "" {
		return nil, fmt.Errorf("%w: withdraw address", ErrNotFound)
	}
	return &PaymentMessage{
		Id:      uuid.Must(uuid.NewV4()).String(),
		Address: address,
		Amount:  amount,
	}, nil
}

func (r *Registry) readExistingToken(tokenId string) (*Token, error) {
	token, err := r.store.ReadToken(tokenId)
	if err != nil {
		return nil, err
	}
	if token == nil {
		return nil, fmt.Errorf("%w: token %s", ErrNotFound, tokenId)
	}
	return token, nil
}

// checkCanSend is the owner-or-approved predicate for transfer, send
// and burn. It is evaluated against the block context of this call.
func (r *Registry) checkCanSend(token *Token, caller string, block BlockContext) error {
	if token.Owner == caller {
		return nil
	}
	for _, a := range token.Approvals {
		if a.Spender == caller && !a.Expires.IsExpired(block) {
			return nil
		}
	}
	op, err := r.store.ReadOperator(token.Owner, caller)
	if err != nil {
		return err
	}
	if op != nil && !op.IsExpired(block) {
		return nil
	}
	return fmt.Errorf("%w: %s cannot send token %s", ErrUnauthorized, caller, token.Id)
}

// checkCanApprove restricts approval grants to the owner or a live
// operator of the owner.
func (r *Registry) checkCanApprove(token *Token, caller string, block BlockContext) error {
	if token.Owner == caller {
		return nil
	}
	op, err := r.store.ReadOperator(token.Owner, caller)
	if err != nil {
		return err
	}
	if op != nil && !op.IsExpired(block) {
		return nil
	}
	return fmt.Errorf("%w: %s cannot approve token %s", ErrUnauthorized, caller, token.Id)
}

func (r *Registry) assertRole(role, caller string) error {
	os, err := r.store.ReadOwnership(role)
	if err != nil {
		return err
	}
	if os == nil || os.Owner == "" || os.Owner != caller {
		return fmt.Errorf("%w: %s is not the %s", ErrUnauthorized, caller, role)
	}
	return nil
}
