package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"

	"github.com/roach88/varq/pkg/dim"
	"github.com/roach88/varq/pkg/quantity"
)

var (
	// ErrNotFound is returned for names that are not in the catalog.
	ErrNotFound = errors.New("quantity not found")

	// ErrCorrupt is returned when a stored row fails its digest check or
	// no longer decodes for its unit.
	ErrCorrupt = errors.New("catalog entry corrupt")
)

const (
	KindConstant = "constant"
	KindFunction = "function"
)

// Entry is the stored metadata of one quantity.
type Entry struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Unit      string    `db:"unit" json:"unit"`
	Kind      string    `db:"kind" json:"kind"`
	Tag       string    `db:"tag" json:"tag,omitempty"`
	Payload   string    `db:"payload" json:"payload"`
	Digest    string    `db:"digest" json:"digest"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Record is an Entry with its decoded value.
type Record struct {
	Entry
	Value quantity.Dynamic `json:"-"`
}

// Put stores v under name, replacing any previous value. unit must parse to
// v's dimension. The entry keeps its ID and creation time across updates.
func (c *Catalog) Put(ctx context.Context, name, unit string, v quantity.Dynamic) (Entry, error) {
	name = norm.NFC.String(name)
	if name == "" {
		return Entry{}, errors.New("put quantity: empty name")
	}

	d, err := dim.ParseDimension(unit)
	if err != nil {
		return Entry{}, fmt.Errorf("put quantity %q: %w", name, err)
	}
	if d != v.Dim() {
		return Entry{}, fmt.Errorf("put quantity %q: %w", name, &dim.MismatchError{Expected: d, Found: v.Dim()})
	}

	payload, err := json.Marshal(v)
	if err != nil {
		return Entry{}, fmt.Errorf("put quantity %q: %w", name, err)
	}

	id, err := uuid.NewV7()
	if err != nil {
		return Entry{}, fmt.Errorf("put quantity %q: %w", name, err)
	}

	now := c.now().UTC()
	e := Entry{
		ID:        id.String(),
		Name:      name,
		Unit:      unit,
		Kind:      KindConstant,
		Payload:   string(payload),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if !v.IsConstant() {
		e.Kind = KindFunction
		e.Tag, _ = quantity.TagOf(v.Function())
	}
	e.Digest = digest(e.Name, e.Unit, e.Payload)

	// ON CONFLICT keeps id and created_at of the existing row.
	_, err = c.db.NamedExecContext(ctx, `
		INSERT INTO quantities
		(id, name, unit, kind, tag, payload, digest, created_at, updated_at)
		VALUES (:id, :name, :unit, :kind, :tag, :payload, :digest, :created_at, :updated_at)
		ON CONFLICT(name) DO UPDATE SET
			unit = excluded.unit,
			kind = excluded.kind,
			tag = excluded.tag,
			payload = excluded.payload,
			digest = excluded.digest,
			updated_at = excluded.updated_at
	`, e)
	if err != nil {
		return Entry{}, fmt.Errorf("put quantity %q: %w", name, err)
	}

	c.logger.Debug("quantity stored",
		"name", e.Name,
		"unit", e.Unit,
		"kind", e.Kind,
		"tag", e.Tag,
	)

	stored, err := c.entry(ctx, name)
	if err != nil {
		return Entry{}, fmt.Errorf("put quantity %q: %w", name, err)
	}
	return stored, nil
}

// Get loads and decodes the quantity called name.
func (c *Catalog) Get(ctx context.Context, name string) (Record, error) {
	name = norm.NFC.String(name)
	e, err := c.entry(ctx, name)
	if err != nil {
		return Record{}, fmt.Errorf("get quantity %q: %w", name, err)
	}

	if got := digest(e.Name, e.Unit, e.Payload); got != e.Digest {
		c.logger.Error("digest mismatch",
			"name", e.Name,
			"stored", e.Digest,
			"computed", got,
		)
		return Record{}, fmt.Errorf("get quantity %q: %w: digest mismatch", name, ErrCorrupt)
	}

	d, err := dim.ParseDimension(e.Unit)
	if err != nil {
		return Record{}, fmt.Errorf("get quantity %q: %w: %w", name, ErrCorrupt, err)
	}
	v, err := quantity.UnmarshalDynamic(d, []byte(e.Payload))
	if err != nil {
		return Record{}, fmt.Errorf("get quantity %q: %w: %w", name, ErrCorrupt, err)
	}

	return Record{Entry: e, Value: v}, nil
}

// List returns all entries ordered by name, without decoding them.
// Returns an empty slice for an empty catalog.
func (c *Catalog) List(ctx context.Context) ([]Entry, error) {
	entries := []Entry{}
	err := c.db.SelectContext(ctx, &entries, `
		SELECT id, name, unit, kind, tag, payload, digest, created_at, updated_at
		FROM quantities
		ORDER BY name COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list quantities: %w", err)
	}
	return entries, nil
}

// Delete removes the quantity called name.
func (c *Catalog) Delete(ctx context.Context, name string) error {
	name = norm.NFC.String(name)
	res, err := c.db.ExecContext(ctx, `DELETE FROM quantities WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete quantity %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete quantity %q: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("delete quantity %q: %w", name, ErrNotFound)
	}
	c.logger.Debug("quantity deleted", "name", name)
	return nil
}

func (c *Catalog) entry(ctx context.Context, name string) (Entry, error) {
	var e Entry
	err := c.db.GetContext(ctx, &e, `
		SELECT id, name, unit, kind, tag, payload, digest, created_at, updated_at
		FROM quantities
		WHERE name = ?
	`, name)
	if errors.Is(err, sql.ErrNoRows) {
		return Entry{}, ErrNotFound
	}
	if err != nil {
		return Entry{}, err
	}
	return e, nil
}
