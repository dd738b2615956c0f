package model

// MonsterDrops is a monster page's drop tables along with where and when
// they were scraped.
type MonsterDrops struct {
	Page      string      `json:"page"`
	URL       string      `json:"url"`
	DropsURL  string      `json:"drops_url"`
	ScrapedAt string      `json:"scraped_at"`
	Tables    *DropTables `json:"tables"`
}

// MonsterSummary describes a cached monster without its rows.
type MonsterSummary struct {
	Page       string `json:"page"`
	URL        string `json:"url"`
	ScrapedAt  string `json:"scraped_at"`
	TableCount int    `json:"table_count"`
	EntryCount int    `json:"entry_count"`
}
