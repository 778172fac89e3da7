package memdb

import (
	"errors"
	"fmt"
	"reflect"

	hcmemdb "github.com/hashicorp/go-memdb"

	"github.com/mesh-intelligence/catalog/pkg/types"
)

var (
	ErrUniqueConstraint = errors.New("fail unique constraint")
	ErrForeignKey       = errors.New("foreign key error")
	ErrNotPtr           = errors.New("not pointer passed")
)

// MemDB wraps go-memdb with the constraint checks of DBSchema.
type MemDB struct {
	*hcmemdb.MemDB

	schema *DBSchema
}

// Txn wraps a go-memdb transaction. Insert and Delete check the schema's
// unique and foreign key constraints and report violations as
// *types.ConstraintViolation.
type Txn struct {
	*hcmemdb.Txn

	schema *DBSchema
}

// NewMemDB builds an empty database for schema.
func NewMemDB(schema *DBSchema) (*MemDB, error) {
	db, err := hcmemdb.NewMemDB(&hcmemdb.DBSchema{Tables: schema.Tables})
	if err != nil {
		return nil, err
	}
	return &MemDB{MemDB: db, schema: schema}, nil
}

// Txn starts a transaction.
func (m *MemDB) Txn(write bool) *Txn {
	return &Txn{Txn: m.MemDB.Txn(write), schema: m.schema}
}

// Insert stores objPtr after checking unique and foreign key constraints.
func (t *Txn) Insert(table string, objPtr any) error {
	if err := t.checkUniqueConstraints(table, objPtr); err != nil {
		return t.violation(table, types.ConstraintUnique, err)
	}
	if err := t.checkForeignKeys(table, objPtr); err != nil {
		return t.violation(table, types.ConstraintForeignKey, err)
	}
	if err := t.Txn.Insert(table, objPtr); err != nil {
		return fmt.Errorf("insert into %s: %w", table, err)
	}
	return nil
}

// Delete removes objPtr unless another table still references it.
func (t *Txn) Delete(table string, objPtr any) error {
	if err := t.checkReferences(table, objPtr); err != nil {
		return t.violation(table, types.ConstraintForeignKey, err)
	}
	if err := t.Txn.Delete(table, objPtr); err != nil {
		return fmt.Errorf("delete from %s: %w", table, err)
	}
	return nil
}

func (t *Txn) violation(table, constraint string, err error) error {
	return &types.ConstraintViolation{
		Category:   t.schema.Categories[table],
		Constraint: constraint,
		Err:        err,
	}
}

func (t *Txn) checkUniqueConstraints(table string, objPtr any) error {
	for _, idxName := range t.schema.UniqueConstraints[table] {
		idx := t.schema.Tables[table].Indexes[idxName]
		vals, err := collectValsForIndexes(objPtr, idx.Indexer)
		if err != nil {
			return fmt.Errorf("collecting vals for index %s at table %s: %w", idxName, table, err)
		}
		raw, err := t.First(table, idxName, vals...)
		if err != nil {
			return fmt.Errorf("checking index %q at table %q: %w", idxName, table, err)
		}
		if raw != nil {
			return fmt.Errorf("%w: %q at table %q", ErrUniqueConstraint, idxName, table)
		}
	}
	return nil
}

func (t *Txn) checkForeignKeys(table string, objPtr any) error {
	for _, rel := range t.schema.ForeignKeys[table] {
		val, err := fieldValue(objPtr, rel.Field)
		if err != nil {
			return err
		}
		raw, err := t.First(rel.RelatedTable, PK, val)
		if err != nil {
			return fmt.Errorf("checking %s.%s: %w", table, rel.Field, err)
		}
		if raw == nil {
			return fmt.Errorf("%w: %s.%s=%q not found in %s", ErrForeignKey, table, rel.Field, val, rel.RelatedTable)
		}
	}
	return nil
}

// checkReferences fails if any row of another table points at objPtr.
func (t *Txn) checkReferences(table string, objPtr any) error {
	pk, err := collectValsForIndexes(objPtr, t.schema.Tables[table].Indexes[PK].Indexer)
	if err != nil {
		return fmt.Errorf("reading primary key at table %s: %w", table, err)
	}
	for child, rels := range t.schema.referencesTo(table) {
		for _, rel := range rels {
			raw, err := t.First(child, rel.RelatedIndex, pk...)
			if err != nil {
				return fmt.Errorf("checking %s.%s: %w", child, rel.Field, err)
			}
			if raw != nil {
				return fmt.Errorf("%w: %s %v is referenced by %s", ErrForeignKey, table, pk[0], child)
			}
		}
	}
	return nil
}

func collectValsForIndexes(objPtr any, indexes ...hcmemdb.Indexer) ([]any, error) {
	var vals []any
	for _, idx := range indexes {
		switch ix := idx.(type) {
		case *hcmemdb.StringFieldIndex:
			v, err := fieldValue(objPtr, ix.Field)
			if err != nil {
				return nil, err
			}
			vals = append(vals, v)
		case *hcmemdb.CompoundIndex:
			extra, err := collectValsForIndexes(objPtr, ix.Indexes...)
			if err != nil {
				return nil, err
			}
			vals = append(vals, extra...)
		default:
			return nil, fmt.Errorf("index type %T is not supported for unique constraint", idx)
		}
	}
	return vals, nil
}

func fieldValue(objPtr any, field string) (string, error) {
	v := reflect.ValueOf(objPtr)
	if v.Kind() != reflect.Ptr {
		return "", fmt.Errorf("%w: %T", ErrNotPtr, objPtr)
	}
	return v.Elem().FieldByName(field).String(), nil
}
