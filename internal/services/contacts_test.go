package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/telbook/telbook-backend/internal/apperr"
)

func boolPtr(b bool) *bool { return &b }

func strPtr(s string) *string { return &s }

func TestBuildContactFilter_Empty(t *testing.T) {
	filter := buildContactFilter(ListParams{})
	require.Empty(t, filter)
}

func TestBuildContactFilter_Search(t *testing.T) {
	filter := buildContactFilter(ListParams{Search: "front desk"})

	or, ok := filter["$or"].(bson.A)
	require.True(t, ok)
	require.Len(t, or, 4)

	fields := make([]string, 0, 4)
	for _, clause := range or {
		m := clause.(bson.M)
		require.Len(t, m, 1)
		for field, v := range m {
			fields = append(fields, field)
			re := v.(primitive.Regex)
			assert.Equal(t, "front desk", re.Pattern)
			assert.Equal(t, "i", re.Options)
		}
	}
	assert.ElementsMatch(t, []string{"name", "department", "designation", "tags"}, fields)
}

func TestBuildContactFilter_SearchEscapesRegexMeta(t *testing.T) {
	filter := buildContactFilter(ListParams{Search: "a.b (ext)"})

	or := filter["$or"].(bson.A)
	re := or[0].(bson.M)["name"].(primitive.Regex)
	assert.Equal(t, `a\.b \(ext\)`, re.Pattern)
}

func TestBuildContactFilter_TagIsAnchored(t *testing.T) {
	filter := buildContactFilter(ListParams{Tag: "IT"})

	re, ok := filter["tags"].(primitive.Regex)
	require.True(t, ok)
	assert.Equal(t, "^IT$", re.Pattern)
	assert.Equal(t, "i", re.Options)
}

func TestBuildContactFilter_LanguageIsAnchored(t *testing.T) {
	filter := buildContactFilter(ListParams{Language: "French"})

	re, ok := filter["languages"].(primitive.Regex)
	require.True(t, ok)
	assert.Equal(t, "^French$", re.Pattern)
}

func TestBuildContactFilter_BoolFilters(t *testing.T) {
	filter := buildContactFilter(ListParams{IsERT: boolPtr(true)})
	assert.Equal(t, true, filter["is_ert"])

	filter = buildContactFilter(ListParams{IsERT: boolPtr(false)})
	assert.Equal(t, false, filter["is_ert"])

	filter = buildContactFilter(ListParams{IsThirdParty: boolPtr(true)})
	assert.Equal(t, true, filter["is_third_party"])
}

func TestBuildContactFilter_ExcludeThirdParty(t *testing.T) {
	filter := buildContactFilter(ListParams{ExcludeThirdParty: true})
	assert.Equal(t, bson.M{"$ne": true}, filter["is_third_party"])

	// An explicit is_third_party filter wins over the exclusion.
	filter = buildContactFilter(ListParams{IsThirdParty: boolPtr(true), ExcludeThirdParty: true})
	assert.Equal(t, true, filter["is_third_party"])
}

func TestBuildContactFilter_CombinedAND(t *testing.T) {
	filter := buildContactFilter(ListParams{
		Search:   "jane",
		Tag:      "IT",
		Language: "French",
		IsERT:    boolPtr(true),
	})

	require.Len(t, filter, 4)
	assert.Contains(t, filter, "$or")
	assert.Contains(t, filter, "tags")
	assert.Contains(t, filter, "languages")
	assert.Contains(t, filter, "is_ert")
}

func TestBuildContactSort(t *testing.T) {
	tests := []struct {
		sortBy    string
		field     string
		direction int
	}{
		{"name", "name", 1},
		{"department", "department", 1},
		{"extension", "extension", -1},
		{"", "_id", 1},
		{"bogus", "_id", 1},
	}

	for _, tc := range tests {
		sort := buildContactSort(tc.sortBy)
		require.NotEmpty(t, sort, tc.sortBy)
		assert.Equal(t, tc.field, sort[0].Key, tc.sortBy)
		assert.Equal(t, tc.direction, sort[0].Value, tc.sortBy)
		// ID tie-break keeps pages stable.
		assert.Equal(t, "_id", sort[len(sort)-1].Key, tc.sortBy)
	}
}

func TestClampPage(t *testing.T) {
	assert.Equal(t, 1, ClampPage(-3))
	assert.Equal(t, 1, ClampPage(0))
	assert.Equal(t, 1, ClampPage(1))
	assert.Equal(t, 42, ClampPage(42))
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, DefaultPageLimit, ClampLimit(0))
	assert.Equal(t, DefaultPageLimit, ClampLimit(-1))
	assert.Equal(t, 1, ClampLimit(1))
	assert.Equal(t, MaxPageLimit, ClampLimit(100))
	assert.Equal(t, MaxPageLimit, ClampLimit(5000))
}

func TestBuildUpdateDoc_PartialFieldsOnly(t *testing.T) {
	now := time.Now().UTC()
	set, err := buildUpdateDoc(ContactUpdate{
		Name:      strPtr("Jane Roe"),
		Extension: strPtr("3301"),
	}, now)
	require.NoError(t, err)

	assert.Equal(t, now, set["updated_at"])
	assert.Equal(t, "Jane Roe", set["name"])
	assert.Equal(t, "3301", set["extension"])
	assert.NotContains(t, set, "company")
	assert.NotContains(t, set, "created_at")
	require.Len(t, set, 3)
}

func TestBuildUpdateDoc_EmptyUpdateStillTouchesTimestamp(t *testing.T) {
	now := time.Now().UTC()
	set, err := buildUpdateDoc(ContactUpdate{}, now)
	require.NoError(t, err)
	require.Len(t, set, 1)
	assert.Equal(t, now, set["updated_at"])
}

func TestBuildUpdateDoc_RejectsEmptyName(t *testing.T) {
	_, err := buildUpdateDoc(ContactUpdate{Name: strPtr("   ")}, time.Now())
	require.Error(t, err)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}

func TestBuildUpdateDoc_Flags(t *testing.T) {
	set, err := buildUpdateDoc(ContactUpdate{
		IsERT:  boolPtr(true),
		Expose: boolPtr(false),
	}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, true, set["is_ert"])
	assert.Equal(t, false, set["expose"])
}

func TestCollectStrings(t *testing.T) {
	values := []interface{}{"French", "Arabic", "", "English", 7, "Hindi"}
	out := collectStrings(values, "English")
	assert.Equal(t, []string{"Arabic", "French", "Hindi"}, out)

	out = collectStrings(values, "")
	assert.Equal(t, []string{"Arabic", "English", "French", "Hindi"}, out)
}
