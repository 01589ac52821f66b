// Copyright (c) 2026 Shelfy. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package library

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/shelfy/internal/platform/apperr"
	"github.com/taibuivan/shelfy/internal/platform/database/schema"
	"github.com/taibuivan/shelfy/internal/platform/dberr"
)

// # PostgreSQL Repository

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed shelf store.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var (
	seriesColumns = schema.List("", schema.ShelfSeries.Columns())
	volumeColumns = schema.List("", schema.ShelfVolume.Columns())
)

// # Series

func (repository *PostgresRepository) ListSeries(context context.Context, userID string) ([]*Series, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s ASC, %s ASC`,
		seriesColumns, schema.ShelfSeries.Table, schema.ShelfSeries.UserID,
		schema.ShelfSeries.CreatedAt, schema.ShelfSeries.ID)

	rows, err := repository.pool.Query(context, query, userID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_series")
	}
	defer rows.Close()

	result := make([]*Series, 0)
	for rows.Next() {
		series, err := scanSeries(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_series")
		}
		result = append(result, series)
	}

	return result, dberr.Wrap(rows.Err(), "list_series")
}

func (repository *PostgresRepository) FindSeries(context context.Context, userID, id string) (*Series, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = $2`,
		seriesColumns, schema.ShelfSeries.Table, schema.ShelfSeries.ID, schema.ShelfSeries.UserID)

	series, err := scanSeries(repository.pool.QueryRow(context, query, id, userID))
	if err != nil {
		return nil, dberr.NotFound(err, "find_series", "Series")
	}
	return series, nil
}

func (repository *PostgresRepository) CreateSeries(context context.Context, series *Series) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		schema.ShelfSeries.Table, seriesColumns)

	_, err := repository.pool.Exec(context, query,
		series.ID, series.UserID, series.Title, series.Author, series.Description,
		(*string)(series.Status), (*string)(series.Type), series.Tags,
		series.CreatedAt, series.UpdatedAt,
	)
	return dberr.Wrap(err, "create_series")
}

func (repository *PostgresRepository) UpdateSeries(context context.Context, series *Series) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8, %s = $9
		WHERE %s = $1 AND %s = $2`,
		schema.ShelfSeries.Table,
		schema.ShelfSeries.Title, schema.ShelfSeries.Author, schema.ShelfSeries.Description,
		schema.ShelfSeries.Status, schema.ShelfSeries.Type, schema.ShelfSeries.Tags, schema.ShelfSeries.UpdatedAt,
		schema.ShelfSeries.ID, schema.ShelfSeries.UserID,
	)

	tag, err := repository.pool.Exec(context, query,
		series.ID, series.UserID, series.Title, series.Author, series.Description,
		(*string)(series.Status), (*string)(series.Type), series.Tags, series.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "update_series")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Series")
	}
	return nil
}

// DeleteSeries removes the series row; its volumes become orphans through
// the ON DELETE SET NULL foreign key.
func (repository *PostgresRepository) DeleteSeries(context context.Context, userID, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.ShelfSeries.Table, schema.ShelfSeries.ID, schema.ShelfSeries.UserID)

	tag, err := repository.pool.Exec(context, query, id, userID)
	if err != nil {
		return dberr.Wrap(err, "delete_series")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Series")
	}
	return nil
}

// # Volumes

func (repository *PostgresRepository) ListVolumes(context context.Context, userID string) ([]*Volume, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s ASC, %s ASC, %s ASC`,
		volumeColumns, schema.ShelfVolume.Table, schema.ShelfVolume.UserID,
		schema.ShelfVolume.Number, schema.ShelfVolume.CreatedAt, schema.ShelfVolume.ID)

	rows, err := repository.pool.Query(context, query, userID)
	if err != nil {
		return nil, dberr.Wrap(err, "list_volumes")
	}
	defer rows.Close()

	result := make([]*Volume, 0)
	for rows.Next() {
		volume, err := scanVolume(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_volume")
		}
		result = append(result, volume)
	}

	return result, dberr.Wrap(rows.Err(), "list_volumes")
}

func (repository *PostgresRepository) FindVolume(context context.Context, userID, id string) (*Volume, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = $2`,
		volumeColumns, schema.ShelfVolume.Table, schema.ShelfVolume.ID, schema.ShelfVolume.UserID)

	volume, err := scanVolume(repository.pool.QueryRow(context, query, id, userID))
	if err != nil {
		return nil, dberr.NotFound(err, "find_volume", "Volume")
	}
	return volume, nil
}

func (repository *PostgresRepository) CreateVolume(context context.Context, volume *Volume) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`,
		schema.ShelfVolume.Table, volumeColumns)

	_, err := repository.pool.Exec(context, query,
		volume.ID, volume.UserID, volume.SeriesID, volume.Number, volume.Title, volume.Description,
		volume.ISBN, volume.CoverURL, string(volume.Ownership), string(volume.Reading),
		volume.Rating, volume.Price, volume.PageCount, volume.StartedAt, volume.FinishedAt,
		volume.CreatedAt, volume.UpdatedAt,
	)
	return dberr.Wrap(err, "create_volume")
}

func (repository *PostgresRepository) UpdateVolume(context context.Context, volume *Volume) error {
	v := schema.ShelfVolume
	query := fmt.Sprintf(`UPDATE %s SET
			%s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8, %s = $9, %s = $10,
			%s = $11, %s = $12, %s = $13, %s = $14, %s = $15, %s = $16
		WHERE %s = $1 AND %s = $2`,
		v.Table,
		v.SeriesID, v.Number, v.Title, v.Description, v.ISBN, v.CoverURL, v.Ownership, v.Reading,
		v.Rating, v.Price, v.PageCount, v.StartedAt, v.FinishedAt, v.UpdatedAt,
		v.ID, v.UserID,
	)

	tag, err := repository.pool.Exec(context, query,
		volume.ID, volume.UserID,
		volume.SeriesID, volume.Number, volume.Title, volume.Description, volume.ISBN, volume.CoverURL,
		string(volume.Ownership), string(volume.Reading),
		volume.Rating, volume.Price, volume.PageCount, volume.StartedAt, volume.FinishedAt, volume.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "update_volume")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Volume")
	}
	return nil
}

func (repository *PostgresRepository) DeleteVolume(context context.Context, userID, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.ShelfVolume.Table, schema.ShelfVolume.ID, schema.ShelfVolume.UserID)

	tag, err := repository.pool.Exec(context, query, id, userID)
	if err != nil {
		return dberr.Wrap(err, "delete_volume")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Volume")
	}
	return nil
}

func (repository *PostgresRepository) MaxVolumeNumber(context context.Context, userID, seriesID string) (int, error) {
	query := fmt.Sprintf(`SELECT COALESCE(MAX(%s), 0) FROM %s WHERE %s = $1 AND %s = $2`,
		schema.ShelfVolume.Number, schema.ShelfVolume.Table, schema.ShelfVolume.UserID, schema.ShelfVolume.SeriesID)

	var number int
	if err := repository.pool.QueryRow(context, query, userID, seriesID).Scan(&number); err != nil {
		return 0, dberr.Wrap(err, "max_volume_number")
	}
	return number, nil
}

// # Row Mapping

func scanSeries(row pgx.Row) (*Series, error) {
	series := &Series{}
	var status, seriesType *string

	err := row.Scan(
		&series.ID, &series.UserID, &series.Title, &series.Author, &series.Description,
		&status, &seriesType, &series.Tags, &series.CreatedAt, &series.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	series.Status = (*SeriesStatus)(status)
	series.Type = (*SeriesType)(seriesType)
	if series.Tags == nil {
		series.Tags = []string{}
	}
	return series, nil
}

func scanVolume(row pgx.Row) (*Volume, error) {
	volume := &Volume{}
	var ownership, reading string

	err := row.Scan(
		&volume.ID, &volume.UserID, &volume.SeriesID, &volume.Number, &volume.Title, &volume.Description,
		&volume.ISBN, &volume.CoverURL, &ownership, &reading,
		&volume.Rating, &volume.Price, &volume.PageCount, &volume.StartedAt, &volume.FinishedAt,
		&volume.CreatedAt, &volume.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	volume.Ownership = Ownership(ownership)
	volume.Reading = ReadingStatus(reading)
	return volume, nil
}
