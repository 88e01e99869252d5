package registry

import (
	"fmt"

	"github.com/MixinNetwork/mixin/logger"
)

// Registry keeps no state of its own, the store passed at construction
// is the single source of truth for every call.
type Registry struct {
	store Store
}

func NewRegistry(store Store) *Registry {
	return &Registry{store: store}
}

// Instantiate seeds the collection metadata, the minter and creator
// slots and the optional withdraw address in one atomic store write.
// The whole configuration is validated before anything is persisted,
// a failed call leaves the store untouched. Roles default to the
// caller when the configuration leaves them unset.
func (r *Registry) Instantiate(conf *Configuration, caller string, block BlockContext) error {
	if caller == "" {
		return fmt.Errorf("%w: empty caller", ErrInvalidInput)
	}
	if conf.Name == "" || conf.Symbol == "" {
		return fmt.Errorf("%w: collection name and symbol required", ErrInvalidInput)
	}
	for _, a := range conf.Attributes {
		if a.Key == "" {
			return fmt.Errorf("%w: empty attribute key", ErrInvalidInput)
		}
	}
	old, err := r.store.ReadCollectionMetadata()
	if err != nil {
		return err
	}
	if old != nil {
		return fmt.Errorf("%w: collection %s", ErrAlreadyExists, old.Name)
	}

	minter, creator := conf.Minter, conf.Creator
	if minter == "" {
		minter = caller
	}
	if creator == "" {
		creator = caller
	}
	cm := &CollectionMetadata{
		Name:      conf.Name,
		Symbol:    conf.Symbol,
		UpdatedAt: block.Time,
	}
	err = r.store.CreateCollection(cm, conf.Attributes, &Ownership{Owner: minter}, &Ownership{Owner: creator}, conf.WithdrawAddress)
	if err != nil {
		return err
	}
	logger.Verbosef("registry.Instantiate(%s, %s) minter %s creator %s\n", conf.Name, conf.Symbol, minter, creator)
	return nil
}
