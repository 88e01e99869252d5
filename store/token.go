package store

import (
	"encoding/binary"
	"fmt"

	"github.com/MixinNetwork/nfr/registry"
	"github.com/dgraph-io/badger/v4"
)

const (
	prefixTokenPayload = "REGISTRY:TOKEN:PAYLOAD:"
	prefixTokenOwner   = "REGISTRY:TOKEN:OWNER:"
	keyTokenCount      = "REGISTRY:TOKEN:COUNT"
)

func (bs *BadgerStore) ReadToken(tokenId string) (*registry.Token, error) {
	txn := bs.db.NewTransaction(false)
	defer txn.Discard()

	return bs.readToken(txn, tokenId)
}

func (bs *BadgerStore) CreateToken(token *registry.Token) error {
	return bs.db.Update(func(txn *badger.Txn) error {
		old, err := bs.readToken(txn, token.Id)
		if err != nil {
			return err
		}
		if old != nil {
			return fmt.Errorf("%w: token %s", registry.ErrAlreadyExists, token.Id)
		}
		err = bs.writeToken(txn, token)
		if err != nil {
			return err
		}
		err = txn.Set(buildOwnerIndexKey(token.Owner, token.Id), []byte{1})
		if err != nil {
			return err
		}
		count, err := readTokenCount(txn)
		if err != nil {
			return err
		}
		return txn.Set([]byte(keyTokenCount), uint64ToBytes(count+1))
	})
}

func (bs *BadgerStore) UpdateToken(token *registry.Token, oldOwner string) error {
	return bs.db.Update(func(txn *badger.Txn) error {
		if oldOwner != token.Owner {
			err := txn.Delete(buildOwnerIndexKey(oldOwner, token.Id))
			if err != nil {
				return err
			}
			err = txn.Set(buildOwnerIndexKey(token.Owner, token.Id), []byte{1})
			if err != nil {
				return err
			}
		}
		return bs.writeToken(txn, token)
	})
}

func (bs *BadgerStore) DeleteToken(token *registry.Token) error {
	return bs.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete([]byte(prefixTokenPayload + token.Id))
		if err != nil {
			return err
		}
		err = txn.Delete(buildOwnerIndexKey(token.Owner, token.Id))
		if err != nil {
			return err
		}
		count, err := readTokenCount(txn)
		if err != nil {
			return err
		}
		if count == 0 {
			panic(token.Id)
		}
		return txn.Set([]byte(keyTokenCount), uint64ToBytes(count-1))
	})
}

func (bs *BadgerStore) ListTokenIds(startAfter string, limit int) ([]string, error) {
	txn := bs.db.NewTransaction(false)
	defer txn.Discard()

	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	opts.Prefix = []byte(prefixTokenPayload)
	it := txn.NewIterator(opts)
	defer it.Close()

	var ids []string
	for it.Seek(seekAfter(opts.Prefix, startAfter)); it.Valid(); it.Next() {
		key := it.Item().Key()
		ids = append(ids, string(key[len(opts.Prefix):]))
		if len(ids) == limit {
			break
		}
	}
	return ids, nil
}

func (bs *BadgerStore) ListTokenIdsForOwner(owner, startAfter string, limit int) ([]string, error) {
	txn := bs.db.NewTransaction(false)
	defer txn.Discard()

	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	opts.Prefix = compositeKey(prefixTokenOwner, owner, "")
	it := txn.NewIterator(opts)
	defer it.Close()

	var ids []string
	for it.Seek(seekAfter(opts.Prefix, startAfter)); it.Valid(); it.Next() {
		key := it.Item().Key()
		ids = append(ids, string(key[len(opts.Prefix):]))
		if len(ids) == limit {
			break
		}
	}
	return ids, nil
}

func (bs *BadgerStore) ReadTokenCount() (uint64, error) {
	txn := bs.db.NewTransaction(false)
	defer txn.Discard()

	return readTokenCount(txn)
}

func (bs *BadgerStore) readToken(txn *badger.Txn, tokenId string) (*registry.Token, error) {
	item, err := txn.Get([]byte(prefixTokenPayload + tokenId))
	if err == badger.ErrKeyNotFound {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	val, err := item.ValueCopy(nil)
	if err != nil {
		return nil, err
	}
	var token registry.Token
	err = msgpackUnmarshal(val, &token)
	return &token, err
}

func (bs *BadgerStore) writeToken(txn *badger.Txn, token *registry.Token) error {
	key := []byte(prefixTokenPayload + token.Id)
	return txn.Set(key, msgpackMarshalPanic(token))
}

func readTokenCount(txn *badger.Txn) (uint64, error) {
	item, err := txn.Get([]byte(keyTokenCount))
	if err == badger.ErrKeyNotFound {
		return 0, nil
	} else if err != nil {
		return 0, err
	}
	val, err := item.ValueCopy(nil)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(val), nil
}

func buildOwnerIndexKey(owner, tokenId string) []byte {
	return compositeKey(prefixTokenOwner, owner, tokenId)
}

// seekAfter returns the smallest key strictly greater than startAfter
// within the prefix, giving the exclusive pagination bound.
func seekAfter(prefix []byte, startAfter string) []byte {
	seek := append([]byte{}, prefix...)
	if startAfter == "" {
		return seek
	}
	seek = append(seek, startAfter...)
	return append(seek, 0)
}
