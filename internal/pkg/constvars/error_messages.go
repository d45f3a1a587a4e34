package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required":   "is required",
	"oneof":      "must be one of [%s]",
	"gender":     "must be one of [male, female, other, unknown]",
	"name_use":   "must be one of [usual, official, temp, nickname, anonymous, old, maiden]",
	"birth_date": "must be in YYYY-MM-DD format",
}

// Tags whose message embeds the tag parameter
var TagsWithParams = map[string]bool{
	"oneof": true,
}
