package store

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/golang/snappy"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// ErrNotFound is returned by Load when nothing has been saved yet.
var ErrNotFound = errors.New("no snapshot saved")

// Snapshot is the state of all named lists after a script run.
type Snapshot struct {
	Lists   map[string][]string
	SavedAt time.Time
}

type Backend interface {
	// Save replaces the stored snapshot with s.
	Save(ctx context.Context, s *Snapshot) error

	// Load returns the last saved snapshot, or ErrNotFound.
	Load(ctx context.Context) (*Snapshot, error)

	io.Closer
}

// Marshal packs s as an 8 byte big endian unix time followed by the
// snappy compressed protobuf encoding of its lists.
func Marshal(s *Snapshot) ([]byte, error) {
	fields := make(map[string]any, len(s.Lists))
	for name, vs := range s.Lists {
		l := make([]any, len(vs))
		for i, v := range vs {
			l[i] = v
		}
		fields[name] = l
	}
	st, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, err
	}
	raw, err := proto.Marshal(st)
	if err != nil {
		return nil, err
	}

	b := make([]byte, 8, 8+snappy.MaxEncodedLen(len(raw)))
	binary.BigEndian.PutUint64(b, uint64(s.SavedAt.Unix()))
	return append(b, snappy.Encode(nil, raw)...), nil
}

func Unmarshal(b []byte) (*Snapshot, error) {
	if len(b) < 8 {
		return nil, errors.New("b is too short")
	}
	savedAt := time.Unix(int64(binary.BigEndian.Uint64(b[:8])), 0)
	raw, err := snappy.Decode(nil, b[8:])
	if err != nil {
		return nil, fmt.Errorf("failed to decompress snapshot, %w", err)
	}
	st := new(structpb.Struct)
	if err := proto.Unmarshal(raw, st); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot, %w", err)
	}

	lists := make(map[string][]string, len(st.GetFields()))
	for name, v := range st.GetFields() {
		lv := v.GetListValue()
		if lv == nil {
			return nil, fmt.Errorf("list %q is not a list value", name)
		}
		vs := make([]string, 0, len(lv.GetValues()))
		for _, e := range lv.GetValues() {
			vs = append(vs, e.GetStringValue())
		}
		lists[name] = vs
	}
	return &Snapshot{Lists: lists, SavedAt: savedAt}, nil
}
