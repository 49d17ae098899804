package orm

import (
	"reflect"

	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/fungible"
	"github.com/iov-one/fungible/errors"
)

// Model is implemented by any entity that can be stored using ModelBucket.
type Model interface {
	proto.Message
	Validate() error
}

// ModelSlicePtr is a pointer to a slice of models, either []T or []*T,
// where *T implements Model.
type ModelSlicePtr interface{}

// ModelBucket is implemented by buckets that operates on Models rather than
// raw bytes.
type ModelBucket interface {
	// One query the database for a single model instance. Lookup is done
	// by the primary key. Result is loaded into given destination model.
	// This method returns ErrNotFound if the entity does not exist in the
	// database.
	// If given model type cannot be used to contain stored entity, ErrType
	// is returned.
	One(db fungible.ReadOnlyKVStore, key []byte, dest Model) error

	// Has returns nil if an entity with given primary key exists. It
	// returns ErrNotFound otherwise.
	Has(db fungible.ReadOnlyKVStore, key []byte) error

	// Put saves given model in the database. The model is validated
	// first.
	Put(db fungible.KVStore, key []byte, m Model) error

	// Delete removes an entity with given primary key from the database.
	// It returns ErrNotFound if an entity with given key does not exist.
	Delete(db fungible.KVStore, key []byte) error

	// Prefix loads all entities with a primary key starting with given
	// prefix into dest, in ascending key order. Returned are the primary
	// keys of loaded entities.
	Prefix(db fungible.ReadOnlyKVStore, prefix []byte, dest ModelSlicePtr) ([][]byte, error)

	// Register registers the bucket for queries under given name or the
	// bucket name if empty.
	Register(name string, r fungible.QueryRouter)
}

// NewModelBucket returns a ModelBucket instance that stores models of the
// same type as given example.
func NewModelBucket(name string, example Model) ModelBucket {
	return &modelBucket{
		b:     NewBucket(name),
		model: reflect.TypeOf(example),
	}
}

type modelBucket struct {
	b     Bucket
	model reflect.Type
}

var _ ModelBucket = (*modelBucket)(nil)

func (mb *modelBucket) One(db fungible.ReadOnlyKVStore, key []byte, dest Model) error {
	if t := reflect.TypeOf(dest); t != mb.model {
		return errors.Wrapf(errors.ErrType, "%s cannot be represented as %s", mb.model, t)
	}
	raw := mb.b.Get(db, key)
	if raw == nil {
		return errors.Wrapf(errors.ErrNotFound, "%T not in the store", dest)
	}
	if err := proto.Unmarshal(raw, dest); err != nil {
		return errors.Wrap(errors.ErrModel, err.Error())
	}
	return nil
}

func (mb *modelBucket) Has(db fungible.ReadOnlyKVStore, key []byte) error {
	if !db.Has(mb.b.DBKey(key)) {
		return errors.Wrapf(errors.ErrNotFound, "%s not in the store", mb.model)
	}
	return nil
}

func (mb *modelBucket) Put(db fungible.KVStore, key []byte, m Model) error {
	if t := reflect.TypeOf(m); t != mb.model {
		return errors.Wrapf(errors.ErrType, "cannot store %s in %s bucket", t, mb.b.name)
	}
	if len(key) == 0 {
		return errors.Wrap(errors.ErrEmpty, "key")
	}
	if err := m.Validate(); err != nil {
		return errors.Wrap(err, "invalid model")
	}
	raw, err := proto.Marshal(m)
	if err != nil {
		return errors.Wrap(errors.ErrModel, err.Error())
	}
	mb.b.Set(db, key, raw)
	return nil
}

func (mb *modelBucket) Delete(db fungible.KVStore, key []byte) error {
	if err := mb.Has(db, key); err != nil {
		return err
	}
	mb.b.Delete(db, key)
	return nil
}

func (mb *modelBucket) Prefix(db fungible.ReadOnlyKVStore, prefix []byte, dest ModelSlicePtr) ([][]byte, error) {
	slice := reflect.ValueOf(dest)
	if slice.Kind() != reflect.Ptr || slice.Elem().Kind() != reflect.Slice {
		return nil, errors.Wrapf(errors.ErrType, "%T is not a pointer to a slice", dest)
	}
	elem := slice.Elem().Type().Elem()
	base := elem
	if elem.Kind() == reflect.Ptr {
		base = elem.Elem()
	}
	if reflect.PtrTo(base) != mb.model {
		return nil, errors.Wrapf(errors.ErrType, "%s cannot be represented as %s", mb.model, elem)
	}

	start, end := prefixRange(mb.b.DBKey(prefix))
	it := db.Iterator(start, end)
	defer it.Close()

	var keys [][]byte
	out := slice.Elem()
	for ; it.Valid(); it.Next() {
		m := reflect.New(base)
		if err := proto.Unmarshal(it.Value(), m.Interface().(proto.Message)); err != nil {
			return nil, errors.Wrap(errors.ErrModel, err.Error())
		}
		if elem.Kind() == reflect.Ptr {
			out = reflect.Append(out, m)
		} else {
			out = reflect.Append(out, m.Elem())
		}
		key := it.Key()[len(mb.b.prefix):]
		keys = append(keys, append([]byte(nil), key...))
	}
	slice.Elem().Set(out)
	return keys, nil
}

func (mb *modelBucket) Register(name string, r fungible.QueryRouter) {
	mb.b.Register(name, r)
}
