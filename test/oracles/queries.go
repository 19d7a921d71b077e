package oracles

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Oracle struct {
	Name string
	SQL  string
}

func All() []Oracle {
	return []Oracle{
		{
			Name: "O1_at_most_one_open_per_listing",
			SQL: `SELECT listing_id, COUNT(*) FROM transactions
                  WHERE status IN ('pending','active')
                  GROUP BY listing_id HAVING COUNT(*) > 1`,
		},
		{
			Name: "O2_availability_matches_open",
			SQL: `SELECT l.id, l.availability::text
                  FROM listings l
                  LEFT JOIN transactions t ON t.listing_id = l.id AND t.status IN ('pending','active')
                  GROUP BY l.id, l.availability
                  HAVING (l.availability::text = 'reserved') <> (COUNT(t.id) > 0)`,
		},
		{
			Name: "O3_no_self_transactions",
			SQL:  `SELECT id FROM transactions WHERE owner_id = initiator_id`,
		},
		{
			Name: "O4_owner_copied_from_listing",
			SQL: `SELECT t.id FROM transactions t
                  JOIN listings l ON l.id = t.listing_id
                  WHERE t.owner_id <> l.owner_id`,
		},
		{
			Name: "O5_active_has_response_message",
			SQL:  `SELECT id FROM transactions WHERE status = 'active' AND COALESCE(response_message, '') = ''`,
		},
		{
			Name: "O6_timestamps_monotonic",
			SQL:  `SELECT id FROM transactions WHERE updated_at < created_at`,
		},
	}
}

// Run executes all oracles and returns the first failure (name and sample row text) or empty name if all pass.
func Run(ctx context.Context, pool *pgxpool.Pool) (string, string, error) {
	for _, o := range All() {
		rows, err := pool.Query(ctx, o.SQL)
		if err != nil {
			return o.Name, "", fmt.Errorf("oracle %s: %w", o.Name, err)
		}
		has := rows.Next()
		if has {
			vals, err := rows.Values()
			rows.Close()
			if err != nil {
				return o.Name, "", err
			}
			return o.Name, fmt.Sprintf("%v", vals), nil
		}
		rows.Close()
	}
	return "", "", nil
}
