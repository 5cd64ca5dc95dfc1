package fetch

import (
	"net/url"
	"strings"
)

// Platform represents a known job board platform.
type Platform string

const (
	// PlatformGreenhouse is the Greenhouse ATS platform
	PlatformGreenhouse Platform = "greenhouse"
	// PlatformLever is the Lever ATS platform
	PlatformLever Platform = "lever"
	// PlatformWorkday is the Workday ATS platform
	PlatformWorkday Platform = "workday"
	// PlatformUnknown is an unrecognized platform
	PlatformUnknown Platform = "unknown"
)

// DetectPlatform identifies the job board platform from a URL.
func DetectPlatform(urlStr string) Platform {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return PlatformUnknown
	}

	host := strings.ToLower(parsed.Hostname())
	switch {
	case strings.HasSuffix(host, "greenhouse.io"):
		return PlatformGreenhouse
	case strings.HasSuffix(host, "lever.co"):
		return PlatformLever
	case strings.HasSuffix(host, "workday.com"), strings.HasSuffix(host, "myworkdayjobs.com"):
		return PlatformWorkday
	}
	return PlatformUnknown
}

// CompanySlug returns the company identifier an ATS embeds in its URLs:
// the first path segment on Greenhouse and Lever, the first host label on
// Workday. It returns "" when the platform carries none.
func CompanySlug(urlStr string, platform Platform) string {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return ""
	}

	switch platform {
	case PlatformGreenhouse, PlatformLever:
		segment, _, _ := strings.Cut(strings.Trim(parsed.Path, "/"), "/")
		if segment == "jobs" {
			return ""
		}
		return segment
	case PlatformWorkday:
		label, _, found := strings.Cut(parsed.Hostname(), ".")
		if !found || label == "www" || label == "workday" {
			return ""
		}
		return label
	}
	return ""
}

// PlatformContentSelectors returns content selectors for a specific platform.
func PlatformContentSelectors(platform Platform) []string {
	switch platform {
	case PlatformGreenhouse:
		return []string{
			".job__description.body",
			".job__description",
			".job-description__content",
			"#content",
			".job-post-container",
		}
	case PlatformLever:
		return []string{
			".posting-page",
			".section-wrapper.page-full-width",
			".posting-description",
			".content",
		}
	case PlatformWorkday:
		return []string{
			"[data-automation-id='jobDescription']",
			".job-description",
		}
	default:
		return JobPostingSelectors()
	}
}

// PlatformTitleSelectors returns selectors for the posting's job title
func PlatformTitleSelectors(platform Platform) []string {
	switch platform {
	case PlatformGreenhouse:
		return []string{".job__title h1", ".app-title", "h1"}
	case PlatformLever:
		return []string{".posting-headline h2", "h2"}
	case PlatformWorkday:
		return []string{"[data-automation-id='jobPostingHeader']", "h2"}
	default:
		return []string{".job-title", "h1"}
	}
}

// PlatformLocationSelectors returns selectors for the posting's location
func PlatformLocationSelectors(platform Platform) []string {
	switch platform {
	case PlatformGreenhouse:
		return []string{".job__location", ".location"}
	case PlatformLever:
		return []string{".posting-categories .location", ".sort-by-location"}
	case PlatformWorkday:
		return []string{"[data-automation-id='locations']"}
	default:
		return []string{".job-location", ".location"}
	}
}

// PlatformNoiseSelectors returns noise exclusion selectors for a specific platform.
func PlatformNoiseSelectors(platform Platform) []string {
	common := []string{
		// application forms
		"form",
		"#application-form",
		".application-form",
		".apply-button-container",
		// EEO and legal
		".voluntary-disclosure",
		".eeo-statement",
		".legal-disclosure",
		// social
		".social-share",
		".share-buttons",
		".cookie-consent",
	}

	switch platform {
	case PlatformGreenhouse:
		return append(common, ".application--wrapper", ".voluntary-self-id", "#usa_self_id_section")
	case PlatformLever:
		return append(common, ".apply-section", ".posting-apply")
	case PlatformWorkday:
		return append(common, "[data-automation-id='applyButton']")
	default:
		return common
	}
}
