package store

import (
	"context"
	"testing"

	"github.com/MixinNetwork/nfr/registry"
	"github.com/dgraph-io/badger/v4"
)

func testStore(t *testing.T) *BadgerStore {
	t.Helper()
	bs, err := OpenBadger(context.Background(), t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { bs.Close() })
	return bs
}

func TestOwnerPartitionsDisjoint(t *testing.T) {
	bs := testStore(t)

	// "a" is a byte prefix of "ab", the index separator must keep the
	// partitions apart
	for _, tc := range []struct{ id, owner string }{
		{"t1", "a"},
		{"t2", "ab"},
		{"t3", "a"},
	} {
		err := bs.CreateToken(&registry.Token{Id: tc.id, Owner: tc.owner})
		if err != nil {
			t.Fatal(err)
		}
	}

	ids, err := bs.ListTokenIdsForOwner("a", "", 10)
	if err != nil || len(ids) != 2 {
		t.Fatalf("owner a tokens %v %v", ids, err)
	}
	if ids[0] != "t1" || ids[1] != "t3" {
		t.Fatalf("owner a order %v", ids)
	}
	ids, err = bs.ListTokenIdsForOwner("ab", "", 10)
	if err != nil || len(ids) != 1 || ids[0] != "t2" {
		t.Fatalf("owner ab tokens %v %v", ids, err)
	}
}

func TestTokenIndexLockstep(t *testing.T) {
	bs := testStore(t)

	token := &registry.Token{Id: "t1", Owner: "alice"}
	err := bs.CreateToken(token)
	if err != nil {
		t.Fatal(err)
	}
	err = bs.CreateToken(&registry.Token{Id: "t1", Owner: "bob"})
	if err == nil {
		t.Fatal("duplicate create succeeded")
	}
	count, err := bs.ReadTokenCount()
	if err != nil || count != 1 {
		t.Fatalf("count after failed create %d %v", count, err)
	}

	token.Owner = "bob"
	err = bs.UpdateToken(token, "alice")
	if err != nil {
		t.Fatal(err)
	}
	// check the raw index keys, not just the scan on top of them
	err = bs.Badger().View(func(txn *badger.Txn) error {
		if _, err := txn.Get(buildOwnerIndexKey("alice", "t1")); err != badger.ErrKeyNotFound {
			t.Errorf("old index key: %v", err)
		}
		if _, err := txn.Get(buildOwnerIndexKey("bob", "t1")); err != nil {
			t.Errorf("new index key: %v", err)
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	ids, err := bs.ListTokenIdsForOwner("alice", "", 10)
	if err != nil || len(ids) != 0 {
		t.Fatalf("stale index entry %v %v", ids, err)
	}
	ids, err = bs.ListTokenIdsForOwner("bob", "", 10)
	if err != nil || len(ids) != 1 {
		t.Fatalf("missing index entry %v %v", ids, err)
	}

	err = bs.DeleteToken(token)
	if err != nil {
		t.Fatal(err)
	}
	got, err := bs.ReadToken("t1")
	if err != nil || got != nil {
		t.Fatalf("token after delete %v %v", got, err)
	}
	ids, err = bs.ListTokenIdsForOwner("bob", "", 10)
	if err != nil || len(ids) != 0 {
		t.Fatalf("index after delete %v %v", ids, err)
	}
	count, err = bs.ReadTokenCount()
	if err != nil || count != 0 {
		t.Fatalf("count after delete %d %v", count, err)
	}
}

func TestTokenRoundTrip(t *testing.T) {
	bs := testStore(t)

	token := &registry.Token{
		Id:        "t1",
		Owner:     "alice",
		TokenURI:  "uri://t1",
		Extension: []byte("payload"),
		Approvals: []registry.Approval{
			{Spender: "bob", Expires: registry.ExpiresAtHeight(100)},
		},
	}
	err := bs.CreateToken(token)
	if err != nil {
		t.Fatal(err)
	}
	got, err := bs.ReadToken("t1")
	if err != nil {
		t.Fatal(err)
	}
	if got.Owner != "alice" || got.TokenURI != "uri://t1" || string(got.Extension) != "payload" {
		t.Fatalf("token %+v", got)
	}
	if len(got.Approvals) != 1 || got.Approvals[0].Expires.AtHeight == nil || *got.Approvals[0].Expires.AtHeight != 100 {
		t.Fatalf("approvals %+v", got.Approvals)
	}
}
