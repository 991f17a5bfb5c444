package entity

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCrop_CanonicalNamesEmbeddedInSentences(t *testing.T) {
	for _, crop := range []string{
		"maize", "beans", "potato", "tomato", "cabbage", "kale", "onion",
		"banana", "mango", "avocado", "coffee", "tea", "rice", "wheat",
		"sorghum", "millet", "cassava", "carrot", "peas",
	} {
		t.Run(crop, func(t *testing.T) {
			msg := fmt.Sprintf("I would like to sell my %s this season", crop)
			assert.Equal(t, crop, Crop(msg))
		})
	}
}

func TestCrop_RegionalSynonymsNormalize(t *testing.T) {
	assert.Equal(t, "maize", Crop("bei ya mahindi ni ngapi"))
	assert.Equal(t, "maize", Crop("nengo mar oduma"))
	assert.Equal(t, "potato", Crop("viazi zangu ziko tayari"))
	assert.Equal(t, "tomato", Crop("nyanya kilo moja"))
}

func TestCrop_PluralsNormalize(t *testing.T) {
	assert.Equal(t, "tomato", Crop("best price for tomatoes today"))
	assert.Equal(t, "potato", Crop("storing potatoes"))
}

func TestCrop_FirstMentionWins(t *testing.T) {
	// Two crops in one message: only the first encountered is returned.
	assert.Equal(t, "maize", Crop("is maize or beans better this season"))
	assert.Equal(t, "beans", Crop("are beans or maize better this season"))
}

func TestCrop_MultiWordBeatsPrefix(t *testing.T) {
	assert.Equal(t, "sweet potato", Crop("sweet potato vines for sale"))
}

func TestCrop_NoMatchReturnsEmpty(t *testing.T) {
	assert.Equal(t, "", Crop("hello there, how are you"))
	assert.Equal(t, "", Crop(""))
}

func TestCrop_Idempotent(t *testing.T) {
	msg := "selling maize in nakuru"
	first := Crop(msg)
	assert.Equal(t, first, Crop(msg))
}

func TestLocation_CountyNames(t *testing.T) {
	assert.Equal(t, "nakuru", Location("selling at Nakuru town"))
	assert.Equal(t, "mombasa", Location("bei ya mahindi mombasa ni ngapi"))
	assert.Equal(t, "uasin gishu", Location("wheat farm in Uasin Gishu"))
	assert.Equal(t, "", Location("selling at the border"))
}

func TestLocation_FirstMentionWins(t *testing.T) {
	assert.Equal(t, "kisumu", Location("from kisumu to nairobi"))
}

func TestProduct(t *testing.T) {
	assert.Equal(t, "fertilizer", Product("is this fertilizer genuine"))
	assert.Equal(t, "", Product("hello"))
}

func TestPolicy(t *testing.T) {
	assert.Equal(t, "subsidy", Policy("has the subsidy program started"))
	assert.Equal(t, "e-voucher", Policy("my e-voucher is not working"))
}

func TestTechnology(t *testing.T) {
	assert.Equal(t, "drip irrigation", Technology("is drip irrigation worth it"))
	assert.Equal(t, "greenhouse", Technology("greenhouse farming costs"))
}
