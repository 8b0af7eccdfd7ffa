package dto

import "encoding/json"

// CommitPage wraps one page of upstream commits with cursor hints derived
// from GitHub's Link header.
type CommitPage struct {
	Commits    json.RawMessage `json:"commits"`
	Pagination CommitPageInfo  `json:"pagination"`
}

// CommitPageInfo carries the pagination state for a commit page.
type CommitPageInfo struct {
	Page    int  `json:"page"`
	PerPage int  `json:"per_page"`
	HasNext bool `json:"has_next"`
	HasPrev bool `json:"has_prev"`
}

// CommitCountResponse reports the total commits for an author.
type CommitCountResponse struct {
	Author string `json:"author"`
	Count  int    `json:"count"`
}

// WeeklyActivity is one contributor's activity aggregated per week.
type WeeklyActivity struct {
	Week      int64 `json:"week"`
	Additions int   `json:"additions"`
	Deletions int   `json:"deletions"`
	Commits   int   `json:"commits"`
}

// ContributorActivity summarises one contributor's work in a repository.
type ContributorActivity struct {
	Login        string           `json:"login"`
	TotalCommits int              `json:"total_commits"`
	Weeks        []WeeklyActivity `json:"weeks"`
}

// ContributorActivityResponse aggregates contributor statistics. Pending is
// true when GitHub is still computing the statistics; callers should retry.
type ContributorActivityResponse struct {
	Pending      bool                  `json:"pending"`
	Contributors []ContributorActivity `json:"contributors,omitempty"`
}
