package config

// Map of job names to job functions
type CronJob struct {
	Schedule string
	Job      func(...string)
}

// Populated from cron/jobs' init() to avoid an import cycle
// (jobs needs config.NewDB).
var CronJobs = map[string]CronJob{
	// Add more jobs here
}
