package notifications

import "github.com/prometheus/client_golang/prometheus"

var mailsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "notification_mails_total",
		Help: "Notification emails by event type and result",
	},
	[]string{"event_type", "result"},
)

func init() {
	prometheus.MustRegister(mailsTotal)
}

func observeMail(eventType string, err error) {
	result := "sent"
	if err != nil {
		result = "failed"
	}
	mailsTotal.WithLabelValues(eventType, result).Inc()
}
