package mysql

import (
	"context"
	"database/sql"
	"errors"

	"drivent/internal/domain"
)

// Enrollment, ticket and session lookups used by the hotel access gate and
// bearer authentication. Rows are owned by the enrollment/ticket/auth flows;
// this package only reads them.

func (r *Repo) FindByUserID(ctx context.Context, userID int64) (domain.Enrollment, error) {
	var e domain.Enrollment
	var (
		addrID                                      sql.NullInt64
		cep, street, city, state, num, neighborhood sql.NullString
		detail                                      sql.NullString
	)
	err := r.db.QueryRowContext(ctx, findEnrollmentByUserSQL, userID).Scan(
		&e.ID, &e.UserID, &e.Name, &e.CPF, &e.Phone, &e.CreatedAt, &e.UpdatedAt,
		&addrID, &cep, &street, &city, &state, &num, &neighborhood, &detail,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Enrollment{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Enrollment{}, err
	}

	if addrID.Valid {
		e.Address = &domain.Address{
			ID:           addrID.Int64,
			CEP:          cep.String,
			Street:       street.String,
			City:         city.String,
			State:        state.String,
			Number:       num.String,
			Neighborhood: neighborhood.String,
		}
		if detail.Valid {
			d := detail.String
			e.Address.AddressDetail = &d
		}
	}
	return e, nil
}

func (r *Repo) FindByEnrollmentID(ctx context.Context, enrollmentID int64) (domain.Ticket, error) {
	var t domain.Ticket
	var status string
	err := r.db.QueryRowContext(ctx, findTicketByEnrollmentSQL, enrollmentID).Scan(
		&t.ID, &t.EnrollmentID, &status, &t.CreatedAt, &t.UpdatedAt,
		&t.Type.ID, &t.Type.Name, &t.Type.Price, &t.Type.IsRemote, &t.Type.IncludesHotel,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Ticket{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Ticket{}, err
	}
	t.Status = domain.TicketStatus(status)
	return t, nil
}

func (r *Repo) FindSessionByToken(ctx context.Context, token string) (domain.Session, error) {
	var s domain.Session
	err := r.db.QueryRowContext(ctx, findSessionByTokenSQL, token).Scan(&s.ID, &s.UserID, &s.Token)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Session{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Session{}, err
	}
	return s, nil
}
