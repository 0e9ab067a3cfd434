package lifecycle

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	kindCompensation = "compensation"
	kindPostCommit   = "post_commit"

	reasonValidation = "validation"
	reasonNotFound   = "not_found"
	reasonStoreError = "store_error"
	reasonReplaced   = "replaced"
	reasonDeleted    = "deleted"
)

//nolint:gochecknoglobals // prometheus collectors are registered once
var imageCleanups = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "foodcatalog",
		Subsystem: "lifecycle",
		Name:      "image_cleanups_total",
		Help:      "Image file deletions performed by the lifecycle manager.",
	},
	[]string{"kind", "reason", "removed"},
)

func observeCleanup(kind, reason string, removed bool) {
	imageCleanups.WithLabelValues(kind, reason, strconv.FormatBool(removed)).Inc()
}
