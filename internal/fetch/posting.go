package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/jonathan/job-tracker/internal/types"
)

// maxNoteRunes bounds how much of a posting's description lands in notes
const maxNoteRunes = 2000

// Posting is what could be read off a job posting page
type Posting struct {
	URL         string             `json:"url"`
	Platform    Platform           `json:"platform"`
	Title       string             `json:"title"`
	Company     string             `json:"company,omitempty"`
	Location    string             `json:"location,omitempty"`
	Description string             `json:"description,omitempty"`
	JobType     types.JobType      `json:"job_type,omitempty"`
	WorkMode    types.WorkMode     `json:"work_mode,omitempty"`
	Salary      *types.SalaryRange `json:"salary,omitempty"`
}

// FetchPosting fetches pageURL and extracts the posting from it. With
// opts.Browser set, a page that yields no title or only a stub description is
// rendered in a headless browser and extracted again.
func FetchPosting(ctx context.Context, pageURL string, opts *Options) (*Posting, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	result, err := Page(ctx, pageURL, opts)
	if err != nil {
		return nil, err
	}
	return postingFromPage(ctx, result, opts)
}

func postingFromPage(ctx context.Context, result *Result, opts *Options) (*Posting, error) {
	log.Printf("[fetch] %s: %d bytes", result.URL, len(result.HTML))
	p, err := ExtractPosting(result.HTML, result.URL)
	if !opts.Browser || (err == nil && !NeedsRender(p)) {
		return p, err
	}
	return renderPosting(ctx, result.URL, opts, p, err)
}

// ExtractPosting reads a posting from HTML. Structured data (schema.org
// JobPosting in JSON-LD) wins; OpenGraph tags, platform selectors and the URL
// fill whatever it leaves blank.
func ExtractPosting(html, pageURL string) (*Posting, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	platform := DetectPlatform(pageURL)
	p := &Posting{URL: pageURL, Platform: platform}

	if ld := findJobPosting(doc); ld != nil {
		ld.fill(p)
	}

	if p.Title == "" {
		p.Title = firstNonEmpty(
			metaContent(doc, "og:title"),
			firstText(doc, PlatformTitleSelectors(platform)),
			strings.TrimSpace(doc.Find("title").First().Text()),
		)
	}
	if p.Company == "" {
		p.Company = firstNonEmpty(
			metaContent(doc, "og:site_name"),
			prettySlug(CompanySlug(pageURL, platform)),
		)
	}
	if p.Location == "" {
		p.Location = firstText(doc, PlatformLocationSelectors(platform))
	}
	if p.WorkMode == "" {
		p.WorkMode = inferWorkMode(p.Location)
	}
	if p.Description == "" {
		// mainText strips nodes from doc, so it runs last
		p.Description = mainText(doc, PlatformContentSelectors(platform), PlatformNoiseSelectors(platform))
	}

	if p.Title == "" {
		return nil, fmt.Errorf("no job title found at %s", pageURL)
	}
	return p, nil
}

// Draft converts the posting into a create request dated appliedDate. Fields
// the page did not provide get the tracker's defaults.
func (p *Posting) Draft(appliedDate string) types.CreateApplicationRequest {
	jobType := p.JobType
	if jobType == "" {
		jobType = types.JobTypeFullTime
	}
	workMode := p.WorkMode
	if workMode == "" {
		workMode = types.WorkModeOnSite
	}

	return types.CreateApplicationRequest{
		Company:       p.Company,
		Role:          p.Title,
		SalaryRange:   p.Salary,
		WorkLocation:  p.Location,
		JobType:       jobType,
		WorkMode:      workMode,
		AppliedDate:   appliedDate,
		Notes:         truncateRunes(p.Description, maxNoteRunes),
		JobPostingURL: p.URL,
	}
}

// ldJobPosting is the subset of schema.org/JobPosting the tracker reads
type ldJobPosting struct {
	Type               json.RawMessage   `json:"@type"`
	Graph              []json.RawMessage `json:"@graph"`
	Title              string            `json:"title"`
	Description        string            `json:"description"`
	EmploymentType     json.RawMessage   `json:"employmentType"`
	JobLocationType    string            `json:"jobLocationType"`
	HiringOrganization struct {
		Name string `json:"name"`
	} `json:"hiringOrganization"`
	JobLocation json.RawMessage `json:"jobLocation"`
	BaseSalary  *struct {
		Currency string `json:"currency"`
		Value    struct {
			MinValue *float64 `json:"minValue"`
			MaxValue *float64 `json:"maxValue"`
			Value    *float64 `json:"value"`
		} `json:"value"`
	} `json:"baseSalary"`
}

type ldPlace struct {
	Address struct {
		Locality string `json:"addressLocality"`
		Region   string `json:"addressRegion"`
	} `json:"address"`
}

// findJobPosting returns the first JobPosting object in the page's JSON-LD
// blocks, looking inside arrays and @graph containers
func findJobPosting(doc *goquery.Document) *ldJobPosting {
	var found *ldJobPosting
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		found = scanLD([]byte(s.Text()))
		return found == nil
	})
	return found
}

func scanLD(data []byte) *ldJobPosting {
	var list []json.RawMessage
	if err := json.Unmarshal(data, &list); err == nil {
		for _, item := range list {
			if p := scanLD(item); p != nil {
				return p
			}
		}
		return nil
	}

	var obj ldJobPosting
	if err := json.Unmarshal(data, &obj); err != nil {
		log.Printf("[fetch] skipping unreadable JSON-LD block: %v", err)
		return nil
	}
	for _, t := range stringList(obj.Type) {
		if t == "JobPosting" {
			return &obj
		}
	}
	for _, item := range obj.Graph {
		if p := scanLD(item); p != nil {
			return p
		}
	}
	return nil
}

func (ld *ldJobPosting) fill(p *Posting) {
	p.Title = strings.TrimSpace(ld.Title)
	p.Company = strings.TrimSpace(ld.HiringOrganization.Name)
	p.Description = htmlToText(ld.Description)
	p.Location = ld.location()

	for _, et := range stringList(ld.EmploymentType) {
		if jt := employmentJobType(et); jt != "" {
			p.JobType = jt
			break
		}
	}
	if strings.EqualFold(ld.JobLocationType, "TELECOMMUTE") {
		p.WorkMode = types.WorkModeRemote
	}

	if ld.BaseSalary != nil {
		v := ld.BaseSalary.Value
		lo, hi := v.MinValue, v.MaxValue
		if lo == nil && hi == nil {
			lo = v.Value
		}
		salary := &types.SalaryRange{
			Min:      formatAmount(lo),
			Max:      formatAmount(hi),
			Currency: ld.BaseSalary.Currency,
		}
		if !salary.IsEmpty() {
			p.Salary = salary
		}
	}
}

func (ld *ldJobPosting) location() string {
	if len(ld.JobLocation) == 0 {
		return ""
	}
	var places []ldPlace
	if err := json.Unmarshal(ld.JobLocation, &places); err != nil {
		var single ldPlace
		if err := json.Unmarshal(ld.JobLocation, &single); err != nil {
			return ""
		}
		places = []ldPlace{single}
	}

	var parts []string
	for _, place := range places {
		var label []string
		for _, s := range []string{place.Address.Locality, place.Address.Region} {
			if s = strings.TrimSpace(s); s != "" {
				label = append(label, s)
			}
		}
		if len(label) > 0 {
			parts = append(parts, strings.Join(label, ", "))
		}
	}
	return strings.Join(parts, "; ")
}

// stringList decodes a JSON value that may be a string or an array of strings
func stringList(raw json.RawMessage) []string {
	if len(raw) == 0 {
		return nil
	}
	var one string
	if err := json.Unmarshal(raw, &one); err == nil {
		return []string{one}
	}
	var many []string
	if err := json.Unmarshal(raw, &many); err == nil {
		return many
	}
	return nil
}

func employmentJobType(s string) types.JobType {
	switch strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", "_")) {
	case "FULL_TIME":
		return types.JobTypeFullTime
	case "PART_TIME":
		return types.JobTypePartTime
	case "CONTRACTOR", "CONTRACT", "TEMPORARY":
		return types.JobTypeContract
	case "FREELANCE":
		return types.JobTypeFreelance
	case "INTERN", "INTERNSHIP":
		return types.JobTypeInternship
	}
	return ""
}

func inferWorkMode(location string) types.WorkMode {
	lower := strings.ToLower(location)
	switch {
	case strings.Contains(lower, "hybrid"):
		return types.WorkModeHybrid
	case strings.Contains(lower, "remote"):
		return types.WorkModeRemote
	}
	return ""
}

func formatAmount(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func metaContent(doc *goquery.Document, property string) string {
	sel := doc.Find(fmt.Sprintf(`meta[property=%q], meta[name=%q]`, property, property)).First()
	content, _ := sel.Attr("content")
	return strings.TrimSpace(content)
}

func firstText(doc *goquery.Document, selectors []string) string {
	for _, selector := range selectors {
		if text := strings.TrimSpace(doc.Find(selector).First().Text()); text != "" {
			return cleanWhitespace(text)
		}
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// htmlToText flattens an HTML fragment, as JSON-LD descriptions usually are
func htmlToText(fragment string) string {
	if fragment == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return cleanWhitespace(fragment)
	}
	doc.Find("br, p, li, h1, h2, h3, h4").Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml("\n")
	})
	return cleanWhitespace(doc.Text())
}

func prettySlug(slug string) string {
	if slug == "" {
		return ""
	}
	words := strings.FieldsFunc(slug, func(r rune) bool { return r == '-' || r == '_' })
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
