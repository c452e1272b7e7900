package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"github.com/flapabay/flapabay-engine/internal/domain"
)

func valStr(p *string) any {
	if p == nil {
		return nil
	}
	return *p
}

func valF64(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}

func boolBit(b bool) int {
	if b {
		return 1
	}
	return 0
}

type Repo struct{ db *sql.DB }

func New(db *sql.DB) *Repo { return &Repo{db: db} }

// propertyArgs flattens the input in propertyColumns order. amenities and
// images always marshal to JSON arrays; price_range stays NULL when absent.
func propertyArgs(feedID any, in domain.NewPropertyInput) []any {
	amen, _ := json.Marshal(in.Amenities)
	imgs, _ := json.Marshal(in.Images)

	var priceRange any
	if in.PriceRange != nil {
		b, _ := json.Marshal(in.PriceRange)
		priceRange = string(b)
	}

	return []any{
		feedID,
		in.Title,
		in.Description,
		in.Location,
		in.Address,
		in.County,
		in.Country,
		in.NeighborhoodArea,
		valF64(in.Lat),
		valF64(in.Lon),
		in.CheckInHour,
		in.CheckOutHour,
		in.NumOfGuests,
		in.NumOfChildren,
		in.MaximumGuests,
		boolBit(in.AllowExtraGuests),
		in.Currency,
		priceRange,
		in.Price,
		in.PricePerNight,
		in.AdditionalGuestPrice,
		in.ChildrenPrice,
		string(amen),
		in.HouseRules,
		string(imgs),
		valStr(in.VideoLink),
		boolBit(in.Verified),
		boolBit(in.Favorite),
		boolBit(in.AllowInstantBooking),
		boolBit(in.ShowContactFormInsteadOfBooking),
		in.PropertyType,
		in.Page,
		in.Rating,
	}
}

func (r *Repo) InsertProperty(ctx context.Context, in domain.NewPropertyInput) (int64, error) {
	res, err := r.db.ExecContext(ctx, insertPropertySQL, propertyArgs(nil, in)...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *Repo) UpsertFeedProperty(ctx context.Context, feedID int64, in domain.NewPropertyInput) (int64, error) {
	res, err := r.db.ExecContext(ctx, upsertFeedPropertySQL, propertyArgs(feedID, in)...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *Repo) LogMiss(ctx context.Context, feedID int64, status int, reason string) error {
	_, err := r.db.ExecContext(ctx, insertMissSQL, feedID, status, reason)
	return err
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface{ Scan(dst ...any) error }

func scanProperty(s scanner) (domain.Property, error) {
	var p domain.Property
	var (
		feedID         sql.NullInt64
		lat, lon       sql.NullFloat64
		priceRangeJSON []byte
		amenitiesJSON  []byte
		imagesJSON     []byte
		videoLink      sql.NullString
	)

	if err := s.Scan(
		&p.ID,
		&feedID,
		&p.Title,
		&p.Description,
		&p.Location,
		&p.Address,
		&p.County,
		&p.Country,
		&p.NeighborhoodArea,
		&lat, &lon,
		&p.CheckInHour,
		&p.CheckOutHour,
		&p.NumOfGuests,
		&p.NumOfChildren,
		&p.MaximumGuests,
		&p.AllowExtraGuests,
		&p.Currency,
		&priceRangeJSON,
		&p.Price,
		&p.PricePerNight,
		&p.AdditionalGuestPrice,
		&p.ChildrenPrice,
		&amenitiesJSON,
		&p.HouseRules,
		&imagesJSON,
		&videoLink,
		&p.Verified,
		&p.Favorite,
		&p.AllowInstantBooking,
		&p.ShowContactFormInsteadOfBooking,
		&p.PropertyType,
		&p.Page,
		&p.Rating,
	); err != nil {
		return domain.Property{}, err
	}

	if feedID.Valid {
		v := feedID.Int64
		p.FeedID = &v
	}
	if lat.Valid {
		v := lat.Float64
		p.Lat = &v
	}
	if lon.Valid {
		v := lon.Float64
		p.Lon = &v
	}
	if len(priceRangeJSON) > 0 {
		var pr domain.PriceRange
		if err := json.Unmarshal(priceRangeJSON, &pr); err == nil {
			p.PriceRange = &pr
		}
	}
	if videoLink.Valid {
		v := videoLink.String
		p.VideoLink = &v
	}
	_ = json.Unmarshal(amenitiesJSON, &p.Amenities)
	_ = json.Unmarshal(imagesJSON, &p.Images)
	return p, nil
}

func (r *Repo) GetProperty(ctx context.Context, id int64) (domain.Property, error) {
	p, err := scanProperty(r.db.QueryRowContext(ctx, getPropertySQL, id))
	if err == sql.ErrNoRows {
		return domain.Property{}, domain.ErrNotFound
	}
	return p, err
}

// ListProperties translates the composed filter into a WHERE clause. Every
// predicate is ANDed; results come back in insertion order.
func (r *Repo) ListProperties(ctx context.Context, f domain.PropertyFilter) ([]domain.Property, error) {
	var conds []string
	var args []any

	if f.VerifiedOnly {
		conds = append(conds, "verified = 1")
	}
	if f.FavoritesOnly {
		conds = append(conds, "favorite = 1")
	}
	if f.PropertyType != nil {
		conds = append(conds, "property_type = ?")
		args = append(args, *f.PropertyType)
	}
	if f.PriceMin != nil && f.PriceMax != nil {
		conds = append(conds, "price BETWEEN ? AND ?")
		args = append(args, *f.PriceMin, *f.PriceMax)
	}

	q := selectPropertySQL
	if len(conds) > 0 {
		q += "\nWHERE " + strings.Join(conds, " AND ")
	}
	q += "\nORDER BY id"
	if f.Limit > 0 {
		q += "\nLIMIT ?"
		args = append(args, f.Limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repo) ListReviewsByUser(ctx context.Context, userID int64) ([]domain.Review, error) {
	rows, err := r.db.QueryContext(ctx, listReviewsByUserSQL, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Review
	for rows.Next() {
		var rv domain.Review
		var (
			rating    sql.NullFloat64
			title     sql.NullString
			text      sql.NullString
			createdAt sql.NullTime
			raw       sql.RawBytes
		)
		if err := rows.Scan(&rv.ID, &rv.UserID, &rating, &title, &text, &createdAt, &raw); err != nil {
			return nil, err
		}
		if rating.Valid {
			v := rating.Float64
			rv.Rating = &v
		}
		if title.Valid {
			v := title.String
			rv.Title = &v
		}
		if text.Valid {
			v := text.String
			rv.Text = &v
		}
		if createdAt.Valid {
			v := createdAt.Time
			rv.CreatedAt = &v
		}
		if len(raw) > 0 {
			rv.RawJSON = append([]byte(nil), raw...)
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}
