package features

import "strings"

// separator joins the tags of an n-gram. Tags are produced by splitting on
// whitespace, so they never contain it and the encoding cannot collide.
const separator = " "

// NGrams returns the feature strings of all n-grams of order n in tags, in
// sequence order. A sequence shorter than n has no n-grams of that order.
func NGrams(n int, tags []string) []string {
	if n < 1 || len(tags) < n {
		return nil
	}
	grams := make([]string, 0, len(tags)-n+1)
	for i := 0; i+n <= len(tags); i++ {
		grams = append(grams, strings.Join(tags[i:i+n], separator))
	}
	return grams
}

// Extract returns the n-grams of every order in rng, lower orders first.
func Extract(tags []string, rng NgramRange) []string {
	var grams []string
	for n := rng.Min; n <= rng.Max; n++ {
		grams = append(grams, NGrams(n, tags)...)
	}
	return grams
}

