package store

import (
	"encoding/binary"

	"github.com/vmihailenco/msgpack/v4"
)

func msgpackMarshalPanic(val interface{}) []byte {
	payload, err := msgpack.Marshal(val)
	if err != nil {
		panic(err)
	}
	return payload
}

func msgpackUnmarshal(data []byte, val interface{}) error {
	return msgpack.Unmarshal(data, val)
}

func uint64ToBytes(d uint64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, d)
	return buf
}

// compositeKey joins variable length address segments with a zero byte
// so one owner's partition can never bleed into another's.
func compositeKey(prefix string, segments ...string) []byte {
	key := []byte(prefix)
	for i, s := range segments {
		if i > 0 {
			key = append(key, 0)
		}
		key = append(key, s...)
	}
	return key
}
