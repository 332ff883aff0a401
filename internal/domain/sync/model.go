package sync

import "time"

type Collection string

const (
	CollectionIncomes     Collection = "incomes"
	CollectionSpendings   Collection = "spendings"
	CollectionObligations Collection = "obligations"
	CollectionAssets      Collection = "assets"
)

// Report describes one full-replace pass over a remote collection.
type Report struct {
	Collection Collection `json:"collection"`
	Upserted   int        `json:"upserted"`
	Deleted    int64      `json:"deleted"`
}

type PushResult struct {
	Reports  []Report  `json:"reports"`
	PushedAt time.Time `json:"pushed_at"`
}
