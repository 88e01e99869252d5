package store

import (
	"fmt"

	"github.com/MixinNetwork/nfr/registry"
	"github.com/dgraph-io/badger/v4"
)

const (
	prefixRoleOwnership       = "REGISTRY:OWNERSHIP:ROLE:"
	prefixCollectionAttribute = "REGISTRY:COLLECTION:ATTRIBUTE:"
	keyCollectionMetadata     = "REGISTRY:COLLECTION:METADATA"
	keyWithdrawAddress        = "REGISTRY:COLLECTION:WITHDRAW"
)

func (bs *BadgerStore) ReadOwnership(role string) (*registry.Ownership, error) {
	txn := bs.db.NewTransaction(false)
	defer txn.Discard()

	item, err := txn.Get([]byte(prefixRoleOwnership + role))
	if err == badger.ErrKeyNotFound {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	val, err := item.ValueCopy(nil)
	if err != nil {
		return nil, err
	}
	var os registry.Ownership
	err = msgpackUnmarshal(val, &os)
	return &os, err
}

func (bs *BadgerStore) WriteOwnership(role string, os *registry.Ownership) error {
	return bs.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(prefixRoleOwnership+role), msgpackMarshalPanic(os))
	})
}

func (bs *BadgerStore) ReadCollectionMetadata() (*registry.CollectionMetadata, error) {
	txn := bs.db.NewTransaction(false)
	defer txn.Discard()

	item, err := txn.Get([]byte(keyCollectionMetadata))
	if err == badger.ErrKeyNotFound {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	val, err := item.ValueCopy(nil)
	if err != nil {
		return nil, err
	}
	var cm registry.CollectionMetadata
	err = msgpackUnmarshal(val, &cm)
	return &cm, err
}

// CreateCollection seeds every instantiation record in one transaction
// so a failure cannot leave the collection half set up.
func (bs *BadgerStore) CreateCollection(cm *registry.CollectionMetadata, attributes []registry.Attribute, minter, creator *registry.Ownership, withdrawAddress string) error {
	return bs.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(keyCollectionMetadata))
		if err == nil {
			return fmt.Errorf("%w: collection %s", registry.ErrAlreadyExists, cm.Name)
		} else if err != badger.ErrKeyNotFound {
			return err
		}
		err = txn.Set([]byte(keyCollectionMetadata), msgpackMarshalPanic(cm))
		if err != nil {
			return err
		}
		for _, a := range attributes {
			err = txn.Set([]byte(prefixCollectionAttribute+a.Key), msgpackMarshalPanic(a))
			if err != nil {
				return err
			}
		}
		err = txn.Set([]byte(prefixRoleOwnership+registry.RoleMinter), msgpackMarshalPanic(minter))
		if err != nil {
			return err
		}
		err = txn.Set([]byte(prefixRoleOwnership+registry.RoleCreator), msgpackMarshalPanic(creator))
		if err != nil {
			return err
		}
		if withdrawAddress == "" {
			return nil
		}
		return txn.Set([]byte(keyWithdrawAddress), []byte(withdrawAddress))
	})
}

// UpdateCollection commits the metadata record and the attribute
// changes together.
func (bs *BadgerStore) UpdateCollection(cm *registry.CollectionMetadata, upsert []registry.Attribute, remove []string) error {
	return bs.db.Update(func(txn *badger.Txn) error {
		err := txn.Set([]byte(keyCollectionMetadata), msgpackMarshalPanic(cm))
		if err != nil {
			return err
		}
		for _, a := range upsert {
			err = txn.Set([]byte(prefixCollectionAttribute+a.Key), msgpackMarshalPanic(a))
			if err != nil {
				return err
			}
		}
		for _, key := range remove {
			err = txn.Delete([]byte(prefixCollectionAttribute + key))
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (bs *BadgerStore) ListCollectionAttributes() ([]registry.Attribute, error) {
	txn := bs.db.NewTransaction(false)
	defer txn.Discard()

	opts := badger.DefaultIteratorOptions
	opts.Prefix = []byte(prefixCollectionAttribute)
	it := txn.NewIterator(opts)
	defer it.Close()

	var attributes []registry.Attribute
	for it.Seek(opts.Prefix); it.Valid(); it.Next() {
		key := it.Item().Key()
		val, err := it.Item().ValueCopy(nil)
		if err != nil {
			return nil, err
		}
		var attr registry.Attribute
		err = msgpackUnmarshal(val, &attr)
		if err != nil {
			return nil, fmt.Errorf("%w: malformed attribute %s: %v", registry.ErrInvalidInput, string(key[len(opts.Prefix):]), err)
		}
		attributes = append(attributes, attr)
	}
	return attributes, nil
}

func (bs *BadgerStore) ReadWithdrawAddress() (string, error) {
	val, err := bs.ReadProperty([]byte(keyWithdrawAddress))
	if err != nil {
		return "", err
	}
	return string(val), nil
}

func (bs *BadgerStore) WriteWithdrawAddress(address string) error {
	return bs.WriteProperty([]byte(keyWithdrawAddress), []byte(address))
}

func (bs *BadgerStore) DeleteWithdrawAddress() error {
	return bs.db.Update(func(txn *badger.Txn) error {
		return txn.Delete([]byte(keyWithdrawAddress))
	})
}
