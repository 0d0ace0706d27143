package store

import (
	"context"
	"fmt"
)

const (
	seedHolidays = `INSERT INTO holidays (name, date_type, month, day, remind_before_days, greeting_template) VALUES
		('New Year''s Day', 'solar', 1, 1, 3, 'Happy New Year! Wishing you all the best for the year ahead!'),
		('Valentine''s Day', 'solar', 2, 14, 3, 'Happy Valentine''s Day!'),
		('Women''s Day', 'solar', 3, 8, 3, 'Happy Women''s Day!'),
		('Labour Day', 'solar', 5, 1, 3, 'Happy Labour Day!'),
		('Children''s Day', 'solar', 6, 1, 3, 'Happy Children''s Day!'),
		('Teachers'' Day', 'solar', 9, 10, 3, 'Happy Teachers'' Day! Thank you for everything you taught me!'),
		('National Day', 'solar', 10, 1, 3, 'Happy National Day!'),
		('Christmas', 'solar', 12, 25, 3, 'Merry Christmas!')`

	seedTemplates = `INSERT INTO message_templates (name, category, content, variables) VALUES
		('Birthday wishes - casual', 'birthday', 'Dear {name}, happy birthday! May every day bring you sunshine and laughter!', '["name"]'),
		('Birthday wishes - formal', 'birthday', 'Dear {name}, on your birthday I wish you health, happiness, and success!', '["name"]'),
		('New Year greeting', 'holiday', '{name}, happy New Year! May all your wishes come true in the year ahead!', '["name"]'),
		('Mid-Autumn greeting', 'holiday', '{name}, happy Mid-Autumn Festival! Wishing you and your family a joyful reunion!', '["name"]'),
		('Thank-you note', 'thanks', 'Dear {name}, thank you so much for {reason}! Your help means a lot to me.', '["name", "reason"]'),
		('Invitation', 'invitation', '{name}, you are warmly invited to {event} at {time}, {location}. Looking forward to seeing you!', '["name", "event", "time", "location"]')`
)

// seedHolidaysLocked inserts the default holiday calendar, but only when
// the holidays table is empty, so user edits and deletions survive
// restarts. Callers must hold s.mu.
func (s *Store) seedHolidaysLocked(ctx context.Context) error {
	empty, err := s.tableEmptyLocked(ctx, "holidays")
	if err != nil {
		return err
	}
	if !empty {
		return nil
	}

	if _, err := s.db.ExecContext(ctx, seedHolidays); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	s.log.Info().Msg("seeded default holidays")

	return nil
}

// seedTemplatesLocked inserts the default message templates, but only when
// the message_templates table is empty. Callers must hold s.mu.
func (s *Store) seedTemplatesLocked(ctx context.Context) error {
	empty, err := s.tableEmptyLocked(ctx, "message_templates")
	if err != nil {
		return err
	}
	if !empty {
		return nil
	}

	if _, err := s.db.ExecContext(ctx, seedTemplates); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	s.log.Info().Msg("seeded default message templates")

	return nil
}
