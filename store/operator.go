package store

import (
	"github.com/MixinNetwork/nfr/registry"
	"github.com/dgraph-io/badger/v4"
)

const prefixOperatorApproval = "REGISTRY:OPERATOR:APPROVAL:"

func (bs *BadgerStore) ReadOperator(owner, operator string) (*registry.Expiration, error) {
	txn := bs.db.NewTransaction(false)
	defer txn.Discard()

	item, err := txn.Get(buildOperatorKey(owner, operator))
	if err == badger.ErrKeyNotFound {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	val, err := item.ValueCopy(nil)
	if err != nil {
		return nil, err
	}
	var expires registry.Expiration
	err = msgpackUnmarshal(val, &expires)
	return &expires, err
}

func (bs *BadgerStore) WriteOperator(owner, operator string, expires registry.Expiration) error {
	return bs.db.Update(func(txn *badger.Txn) error {
		return txn.Set(buildOperatorKey(owner, operator), msgpackMarshalPanic(expires))
	})
}

func (bs *BadgerStore) DeleteOperator(owner, operator string) error {
	return bs.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(buildOperatorKey(owner, operator))
	})
}

func (bs *BadgerStore) ListOperators(owner, startAfter string, limit int) ([]registry.Approval, error) {
	txn := bs.db.NewTransaction(false)
	defer txn.Discard()

	opts := badger.DefaultIteratorOptions
	opts.Prefix = compositeKey(prefixOperatorApproval, owner, "")
	it := txn.NewIterator(opts)
	defer it.Close()

	var approvals []registry.Approval
	for it.Seek(seekAfter(opts.Prefix, startAfter)); it.Valid(); it.Next() {
		key := it.Item().Key()
		val, err := it.Item().ValueCopy(nil)
		if err != nil {
			return nil, err
		}
		var expires registry.Expiration
		err = msgpackUnmarshal(val, &expires)
		if err != nil {
			return nil, err
		}
		approvals = append(approvals, registry.Approval{
			Spender: string(key[len(opts.Prefix):]),
			Expires: expires,
		})
		if len(approvals) == limit {
			break
		}
	}
	return approvals, nil
}

func buildOperatorKey(owner, operator string) []byte {
	return compositeKey(prefixOperatorApproval, owner, operator)
}
