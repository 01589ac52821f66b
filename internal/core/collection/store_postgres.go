// Copyright (c) 2026 Shelfy. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package collection

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/shelfy/internal/platform/apperr"
	"github.com/taibuivan/shelfy/internal/platform/database/schema"
	"github.com/taibuivan/shelfy/internal/platform/dberr"
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// selectCollection reads a collection with its member IDs aggregated in
// insertion order. Callers append the WHERE clause.
var selectCollection = fmt.Sprintf(`SELECT %s,
		COALESCE(
			array_agg(i.%s::text ORDER BY i.%s, i.%s) FILTER (WHERE i.%s IS NOT NULL),
			'{}'
		)
	FROM %s c
	LEFT JOIN %s i ON i.%s = c.%s`,
	schema.List("c", schema.ShelfCollection.Columns()),
	schema.ShelfCollectionItem.VolumeID, schema.ShelfCollectionItem.AddedAt,
	schema.ShelfCollectionItem.VolumeID, schema.ShelfCollectionItem.VolumeID,
	schema.ShelfCollection.Table,
	schema.ShelfCollectionItem.Table, schema.ShelfCollectionItem.CollectionID, schema.ShelfCollection.ID,
)

func (repository *PostgresRepository) List(context context.Context, userID string) ([]*Collection, error) {
	query := fmt.Sprintf(`%s WHERE c.%s = $1 GROUP BY c.%s ORDER BY c.%s ASC, c.%s ASC`,
		selectCollection, schema.ShelfCollection.UserID, schema.ShelfCollection.ID,
		schema.ShelfCollection.Name, schema.ShelfCollection.ID)

	rows, err := repository.pool.Query(context, query, userID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_collections")
	}
	defer rows.Close()

	result := make([]*Collection, 0)
	for rows.Next() {
		collection, err := scanCollection(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_collection")
		}
		result = append(result, collection)
	}

	return result, dberr.Wrap(rows.Err(), "list_collections")
}

func (repository *PostgresRepository) FindByID(context context.Context, userID, id string) (*Collection, error) {
	return repository.findOne(context, schema.ShelfCollection.ID, userID, id)
}

func (repository *PostgresRepository) FindBySlug(context context.Context, userID, slug string) (*Collection, error) {
	return repository.findOne(context, schema.ShelfCollection.Slug, userID, slug)
}

func (repository *PostgresRepository) findOne(context context.Context, column, userID, value string) (*Collection, error) {
	query := fmt.Sprintf(`%s WHERE c.%s = $1 AND c.%s = $2 GROUP BY c.%s`,
		selectCollection, column, schema.ShelfCollection.UserID, schema.ShelfCollection.ID)

	collection, err := scanCollection(repository.pool.QueryRow(context, query, value, userID))
	if err != nil {
		return nil, dberr.NotFound(err, "find_collection", "Collection")
	}
	return collection, nil
}

func (repository *PostgresRepository) Create(context context.Context, collection *Collection) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		schema.ShelfCollection.Table, schema.List("", schema.ShelfCollection.Columns()))

	_, err := repository.pool.Exec(context, query,
		collection.ID, collection.UserID, collection.Name, collection.Slug,
		collection.Description, collection.CreatedAt, collection.UpdatedAt,
	)
	return dberr.Wrap(err, "create_collection")
}

func (repository *PostgresRepository) Delete(context context.Context, userID, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.ShelfCollection.Table, schema.ShelfCollection.ID, schema.ShelfCollection.UserID)

	tag, err := repository.pool.Exec(context, query, id, userID)
	if err != nil {
		return dberr.Wrap(err, "delete_collection")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Collection")
	}
	return nil
}

// AddVolume inserts the membership row only when both sides belong to the user.
// An existing row is touched nowhere and still reports success.
func (repository *PostgresRepository) AddVolume(context context.Context, userID, collectionID, volumeID string) error {
	query := fmt.Sprintf(`WITH owned AS (
			SELECT c.%s AS collectionid, v.%s AS volumeid
			FROM %s c, %s v
			WHERE c.%s = $1 AND v.%s = $2 AND c.%s = $3 AND v.%s = $3
		), inserted AS (
			INSERT INTO %s (%s, %s)
			SELECT collectionid, volumeid FROM owned
			ON CONFLICT DO NOTHING
		)
		SELECT count(*) FROM owned`,
		schema.ShelfCollection.ID, schema.ShelfVolume.ID,
		schema.ShelfCollection.Table, schema.ShelfVolume.Table,
		schema.ShelfCollection.ID, schema.ShelfVolume.ID, schema.ShelfCollection.UserID, schema.ShelfVolume.UserID,
		schema.ShelfCollectionItem.Table, schema.ShelfCollectionItem.CollectionID, schema.ShelfCollectionItem.VolumeID,
	)

	var owned int
	if err := repository.pool.QueryRow(context, query, collectionID, volumeID, userID).Scan(&owned); err != nil {
		return dberr.Wrap(err, "add_collection_volume")
	}
	if owned == 0 {
		return apperr.NotFound("Collection or volume")
	}
	return repository.touch(context, userID, collectionID)
}

func (repository *PostgresRepository) RemoveVolume(context context.Context, userID, collectionID, volumeID string) error {
	query := fmt.Sprintf(`DELETE FROM %s i USING %s c
		WHERE i.%s = c.%s AND c.%s = $1 AND c.%s = $2 AND i.%s = $3`,
		schema.ShelfCollectionItem.Table, schema.ShelfCollection.Table,
		schema.ShelfCollectionItem.CollectionID, schema.ShelfCollection.ID,
		schema.ShelfCollection.ID, schema.ShelfCollection.UserID, schema.ShelfCollectionItem.VolumeID,
	)

	tag, err := repository.pool.Exec(context, query, collectionID, userID, volumeID)
	if err != nil {
		return dberr.Wrap(err, "remove_collection_volume")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Collection member")
	}
	return repository.touch(context, userID, collectionID)
}

func (repository *PostgresRepository) touch(context context.Context, userID, collectionID string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = now() WHERE %s = $1 AND %s = $2`,
		schema.ShelfCollection.Table, schema.ShelfCollection.UpdatedAt,
		schema.ShelfCollection.ID, schema.ShelfCollection.UserID)

	_, err := repository.pool.Exec(context, query, collectionID, userID)
	return dberr.Wrap(err, "touch_collection")
}

func scanCollection(row pgx.Row) (*Collection, error) {
	collection := &Collection{}
	err := row.Scan(
		&collection.ID, &collection.UserID, &collection.Name, &collection.Slug, &collection.Description,
		&collection.CreatedAt, &collection.UpdatedAt, &collection.VolumeIDs,
	)
	if err != nil {
		return nil, err
	}
	if collection.VolumeIDs == nil {
		collection.VolumeIDs = []string{}
	}
	return collection, nil
}
