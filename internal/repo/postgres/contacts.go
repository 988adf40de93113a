package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/therohansaxena/AddressBook/internal/domain/contact"
)

type ContactsRepo struct {
	pool *pgxpool.Pool
}

// constructor function

func NewContactsRepo(pool *pgxpool.Pool) *ContactsRepo {
	return &ContactsRepo{
		pool: pool,
	}
}

func (r *ContactsRepo) List(ctx context.Context) ([]contact.Contact, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, name, phone_number, email, address FROM contacts ORDER BY id ASC`)

	if err != nil {
		return nil, err
	}

	defer rows.Close()

	output := make([]contact.Contact, 0)

	for rows.Next() {
		var c contact.Contact

		err = rows.Scan(&c.ID, &c.Name, &c.PhoneNumber, &c.Email, &c.Address)

		if err != nil {
			return nil, err
		}

		output = append(output, c)
	}

	err = rows.Err()

	if err != nil {
		return nil, err
	}

	return output, nil
}

func (r *ContactsRepo) GetByID(ctx context.Context, id int64) (contact.Contact, error) {
	var c contact.Contact

	err := r.pool.QueryRow(ctx,
		`SELECT id, name, phone_number, email, address FROM contacts WHERE id = $1`,
		id,
	).Scan(&c.ID, &c.Name, &c.PhoneNumber, &c.Email, &c.Address)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return contact.Contact{}, contact.ErrNotFound
		}

		return contact.Contact{}, err
	}

	return c, nil
}

// Create persists the contact and returns it with the assigned id. A missing
// RETURNING row surfaces as an error, never as an empty contact.

func (r *ContactsRepo) Create(ctx context.Context, c contact.Contact) (contact.Contact, error) {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO contacts(name, phone_number, email, address)
		 VALUES($1, $2, $3, $4)
		 RETURNING id`,
		c.Name, c.PhoneNumber, c.Email, c.Address,
	).Scan(&c.ID)

	if err != nil {
		return contact.Contact{}, err
	}

	return c, nil
}

func (r *ContactsRepo) Update(ctx context.Context, id int64, c contact.Contact) (contact.Contact, error) {
	var out contact.Contact

	err := r.pool.QueryRow(ctx,
		`UPDATE contacts
			SET name = $2,
					phone_number = $3,
					email = $4,
					address = $5
		WHERE id = $1
		RETURNING id, name, phone_number, email, address`,
		id, c.Name, c.PhoneNumber, c.Email, c.Address,
	).Scan(&out.ID, &out.Name, &out.PhoneNumber, &out.Email, &out.Address)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return contact.Contact{}, contact.ErrNotFound
		}

		return contact.Contact{}, err
	}

	return out, nil
}

func (r *ContactsRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM contacts WHERE id = $1`, id)

	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return contact.ErrNotFound
	}

	return nil
}
