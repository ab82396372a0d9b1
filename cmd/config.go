package cmd

type Config struct {
	HTTPPort             string
	OrdersAPIBaseURL     string
	OrdersAPIToken       string
	VenueID              string
	PollSeconds          int
	RedisAddr            string
	JournalPath          string
	VisibleWindowMinutes int
}
