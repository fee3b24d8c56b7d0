// Copyright (c) 2026 Otaclub. All rights reserved.
// Author: m.lebrun.dev@gmail.com

package comment

import (
	"regexp"
	"unicode"
)

// Spam verdict reasons, logged when a comment is rejected.
const (
	ReasonPromo     = "promotional_cta"
	ReasonTopic     = "spam_topic"
	ReasonURLs      = "too_many_urls"
	ReasonCharRun   = "repeated_characters"
	ReasonUppercase = "excessive_uppercase"
)

const (
	maxURLs           = 2
	maxCharRun        = 10
	uppercaseRatioMax = 0.70
	uppercaseMinAlpha = 10
)

var (
	// A promotional keyword within 60 characters of a call-to-action word.
	promoPattern = regexp.MustCompile(`(?is)\b(free|cheap|discount|promo|promotion|offre|gratuit|pas cher|solde)\b.{0,60}\b(click|cliquez|buy|achetez|order|commandez|visit|visitez|subscribe|inscrivez)\b`)

	// Topics that never belong under a webzine article.
	topicPattern = regexp.MustCompile(`(?i)\b(viagra|cialis|casino|poker en ligne|forex|crypto[ -]?trading|payday loan|replica watch(es)?|rolex replica)\b`)

	urlPattern = regexp.MustCompile(`(?i)https?://[^\s]+|\bwww\.[^\s]+`)
)

// SpamReason classifies a comment body against the heuristic rules and
// returns the first matching reason, or "" when the content is clean.
//
// The function is pure: the same input always yields the same verdict.
func SpamReason(content string) string {
	if promoPattern.MatchString(content) {
		return ReasonPromo
	}

	if topicPattern.MatchString(content) {
		return ReasonTopic
	}

	if len(urlPattern.FindAllString(content, maxURLs+1)) > maxURLs {
		return ReasonURLs
	}

	if longestRun(content) > maxCharRun {
		return ReasonCharRun
	}

	if excessiveUppercase(content) {
		return ReasonUppercase
	}

	return ""
}

// IsSpam reports whether the content trips any heuristic rule.
func IsSpam(content string) bool {
	return SpamReason(content) != ""
}

// longestRun returns the length of the longest run of one repeated rune.
// Whitespace runs are ignored so formatting cannot trip the rule.
func longestRun(content string) int {
	longest, current := 0, 0
	var previous rune

	for _, r := range content {
		if unicode.IsSpace(r) {
			current = 0
			previous = 0
			continue
		}
		if r == previous {
			current++
		} else {
			current = 1
			previous = r
		}
		if current > longest {
			longest = current
		}
	}

	return longest
}

// excessiveUppercase reports whether more than 70% of the letters are
// uppercase. Short shouts ("LOL") are tolerated via a minimum letter count.
func excessiveUppercase(content string) bool {
	letters, uppers := 0, 0
	for _, r := range content {
		if unicode.IsLetter(r) {
			letters++
			if unicode.IsUpper(r) {
				uppers++
			}
		}
	}

	if letters < uppercaseMinAlpha {
		return false
	}
	return float64(uppers)/float64(letters) > uppercaseRatioMax
}
