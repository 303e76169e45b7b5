package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PostsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "posts_created_total",
			Help: "Total number of posts created",
		},
	)

	FileResourcesAttached = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "file_resources_attached_total",
			Help: "Total number of file resources attached to posts",
		},
	)
)
