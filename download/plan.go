// Package download fetches the prepared dataset archives and their manifests.
package download

import (
	"fmt"
	"strings"

	"github.com/acubelab/ppcutils"
)

// DefaultBaseURL is where the archives are published. It has no trailing slash.
const DefaultBaseURL = "https://pages.di.unipi.it/boffa/swh_endpoint"

const (
	SizeDebug  = "DEBUG"
	Size25GiB  = "25GiB"
	Size50GiB  = "50GiB"
	Size200GiB = "200GiB"
)

// AllLanguages selects every language of a per-language dataset.
const AllLanguages = "all"

// Sizes lists the valid dataset sizes.
var Sizes = []string{SizeDebug, Size25GiB, Size50GiB, Size200GiB}

// Languages lists the languages of the per-language datasets, in the order
// AllLanguages expands to.
var Languages = []string{"C", "Python", "Javascript", "Java", "random"}

// Request is one file to fetch.
type Request struct {
	URL string
	// Manifest is true for the CSV listing an archive's contents.
	Manifest bool
}

// Plan is the ordered list of files making up one dataset selection.
type Plan struct {
	Size      string
	Languages []string
	Requests  []Request
}

// NewPlan builds the download requests for a dataset size. Languages are only
// meaningful for the 25GiB and 200GiB datasets; an empty list means "random".
func NewPlan(baseURL, size string, languages []string) (Plan, error) {
	baseURL = strings.TrimSuffix(baseURL, "/")
	plan := Plan{Size: size}

	switch size {
	case SizeDebug:
		for _, name := range []string{"C_small", "Python_small", "random_small"} {
			plan.Requests = append(
				plan.Requests,
				Request{URL: fmt.Sprintf("%s/DEBUG/%s_filename+path_sort_0GiB.tar.zstd_22", baseURL, name)},
				Request{URL: fmt.Sprintf("%s/DEBUG/%s.csv", baseURL, name), Manifest: true},
			)
		}
	case Size50GiB:
		prefix := baseURL + "/50GiB_github/"
		plan.Requests = []Request{
			{URL: prefix + "50GiB_github_filename_sort_50GiB.tar.zstd_22"},
			{URL: prefix + "50GiB_github.csv", Manifest: true},
			{URL: prefix + "repos_all_compressed.tar.zstd_22"},
		}
	case Size25GiB, Size200GiB:
		expanded, err := expandLanguages(languages)
		if err != nil {
			return plan, err
		}
		plan.Languages = expanded
		for _, language := range expanded {
			prefix := fmt.Sprintf("%s/%s/%s_selection/%s_selection", baseURL, size, language, language)
			plan.Requests = append(
				plan.Requests,
				Request{URL: fmt.Sprintf("%s_filename+path_sort_%s.tar.zstd_22", prefix, size)},
				Request{URL: fmt.Sprintf("%s_%s_info.csv", prefix, size), Manifest: true},
			)
		}
	default:
		return plan, ppcutils.ErrInvalidArgument.WithMessage(
			fmt.Sprintf("unknown size %q, expected one of %s", size, strings.Join(Sizes, ", ")))
	}
	return plan, nil
}

func expandLanguages(languages []string) ([]string, error) {
	if len(languages) == 0 {
		return []string{"random"}, nil
	}

	expanded := make([]string, 0, len(languages))
	for _, language := range languages {
		if language == AllLanguages {
			return append([]string(nil), Languages...), nil
		}
		if !isKnownLanguage(language) {
			return nil, ppcutils.ErrInvalidArgument.WithMessage(
				fmt.Sprintf(
					"unknown language %q, expected %s or %s",
					language, strings.Join(Languages, ", "), AllLanguages))
		}
		expanded = append(expanded, language)
	}
	return expanded, nil
}

func isKnownLanguage(language string) bool {
	for _, known := range Languages {
		if known == language {
			return true
		}
	}
	return false
}
