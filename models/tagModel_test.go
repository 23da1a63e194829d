package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagCategoryNormalizesCasing(t *testing.T) {
	for _, raw := range []string{`"Fabric"`, `"fabric"`, `"FABRIC"`} {
		var c TagCategory
		require.NoError(t, json.Unmarshal([]byte(raw), &c))
		assert.Equal(t, TagCategoryFabric, c)
	}

	var c TagCategory
	require.NoError(t, json.Unmarshal([]byte(`"dresstype"`), &c))
	assert.Equal(t, TagCategoryDressType, c)
}

func TestTagCategoryRejectsUnknown(t *testing.T) {
	var tag Tag
	err := json.Unmarshal([]byte(`{"name":"Zari","category":"design"}`), &tag)
	assert.Error(t, err)
}

func TestTagValidate(t *testing.T) {
	empty := ""
	tag := Tag{Name: "  Red ", Category: TagCategoryColor, ColorHex: &empty}
	require.NoError(t, tag.Validate())
	assert.Equal(t, "Red", tag.Name)
	assert.Nil(t, tag.ColorHex)

	tag = Tag{Name: "Red", Category: "Color"}
	var verr *ValidationError
	assert.ErrorAs(t, tag.Validate(), &verr)
	assert.Equal(t, "category", verr.Field)
}
