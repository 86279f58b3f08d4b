package services

import (
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// dateLayout is how dates are rendered in responses, e.g. "Sun Jan 15 2023".
const dateLayout = "Mon Jan 02 2006"

// acceptedDateLayouts are the input formats tried in order when parsing a
// client-supplied date string.
var acceptedDateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
}

// formatDate renders the UTC calendar date; stored dates are UTC but the
// driver may decode them into the local zone.
func formatDate(t time.Time) string {
	return t.UTC().Format(dateLayout)
}

func parseDate(s string) (time.Time, error) {
	var err error
	for _, layout := range acceptedDateLayouts {
		var t time.Time
		t, err = time.Parse(layout, s)
		if err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, err
}

// parseLimit turns the raw limit query parameter into a result cap. Anything
// absent, unparseable, or non-positive means "no cap"; it must never be
// coerced into returning zero results.
func parseLimit(s string) (int64, bool) {
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, false
	}
	return int64(n), true
}

// buildLogFilter constructs the exercise filter for a user with an optional
// closed date interval [from, to].
func buildLogFilter(userID string, from, to *time.Time) bson.M {
	filter := bson.M{"userId": userID}

	switch {
	case from != nil && to != nil:
		filter["date"] = bson.M{"$gte": *from, "$lte": *to}
	case from != nil:
		filter["date"] = bson.M{"$gte": *from}
	case to != nil:
		filter["date"] = bson.M{"$lte": *to}
	}

	return filter
}

// buildLogFindOptions projects away the entry's own identifier, sorts by date
// ascending, and applies the cap when one was given.
func buildLogFindOptions(limit int64, capped bool) *options.FindOptions {
	findOptions := options.Find()
	findOptions.SetProjection(bson.M{
		"_id":         0,
		"description": 1,
		"duration":    1,
		"date":        1,
	})
	findOptions.SetSort(bson.D{{Key: "date", Value: 1}})
	if capped {
		findOptions.SetLimit(limit)
	}
	return findOptions
}
