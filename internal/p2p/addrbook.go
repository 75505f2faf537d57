package p2p

import (
	"encoding/binary"
	"time"

	"go.etcd.io/bbolt"
)

const addrBucket = "addrs"

// AddrBook is the persistent set of peer addresses the node has learned,
// keyed by "host:port" with the last-seen time as the value. It survives
// restarts so the node can rejoin the network without bootstrap peers.
type AddrBook struct {
	db *bbolt.DB
}

func OpenAddrBook(path string) (*AddrBook, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(addrBucket))
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &AddrBook{db: db}, nil
}

func (ab *AddrBook) Close() error {
	return ab.db.Close()
}

// Add records an address with the current time as last seen.
func (ab *AddrBook) Add(addr string) error {
	return ab.AddWithTime(addr, time.Now())
}

func (ab *AddrBook) AddWithTime(addr string, lastSeen time.Time) error {
	return ab.db.Update(func(tx *bbolt.Tx) error {
		var ts [8]byte
		binary.LittleEndian.PutUint64(ts[:], uint64(lastSeen.Unix()))
		return tx.Bucket([]byte(addrBucket)).Put([]byte(addr), ts[:])
	})
}

func (ab *AddrBook) Remove(addr string) error {
	return ab.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(addrBucket)).Delete([]byte(addr))
	})
}

// All returns every known address.
func (ab *AddrBook) All() ([]string, error) {
	var addrs []string
	err := ab.db.View(func(tx *bbolt.Tx) error {
		return tx.Bucket([]byte(addrBucket)).ForEach(func(k, v []byte) error {
			addrs = append(addrs, string(k))
			return nil
		})
	})
	return addrs, err
}

// LastSeen returns when an address was last recorded, or false if unknown.
func (ab *AddrBook) LastSeen(addr string) (time.Time, bool) {
	var ts time.Time
	var found bool
	ab.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket([]byte(addrBucket)).Get([]byte(addr))
		if v != nil {
			ts = time.Unix(int64(binary.LittleEndian.Uint64(v)), 0)
			found = true
		}
		return nil
	})
	return ts, found
}
