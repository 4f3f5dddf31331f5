package config

const (
	defaultWatchDir            = "~/Downloads"
	defaultStateDir            = "~/.local/share/curator"
	defaultLogDir              = "~/.local/share/curator/logs"
	defaultDocumentsDir        = "~/Documents"
	defaultImagesDir           = "~/Pictures"
	defaultVideosDir           = "~/Videos"
	defaultAudioDir            = "~/Music"
	defaultArchivesDir         = "~/Documents/Archives"
	defaultCodeDir             = "~/Projects"
	defaultOtherDir            = "~/Other"
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
	defaultLogRetentionDays    = 30
	defaultWorkers             = 2
	defaultQueuePollInterval   = 2
	defaultErrorRetryInterval  = 10
	defaultSettleSeconds       = 2
	defaultMatcherThreshold    = 0.5
	defaultNormalizeFilenames  = true
	defaultConvertHeicEnabled  = true
	defaultMatcherEnabled      = true
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			WatchDir: defaultWatchDir,
			StateDir: defaultStateDir,
			LogDir:   defaultLogDir,
		},
		Categories: Categories{
			Documents: defaultDocumentsDir,
			Images:    defaultImagesDir,
			Videos:    defaultVideosDir,
			Audio:     defaultAudioDir,
			Archives:  defaultArchivesDir,
			Code:      defaultCodeDir,
			Other:     defaultOtherDir,
		},
		Preprocess: Preprocess{
			NormalizeFilenames: defaultNormalizeFilenames,
			ConvertHeic:        defaultConvertHeicEnabled,
		},
		Matcher: Matcher{
			Enabled:             defaultMatcherEnabled,
			SimilarityThreshold: defaultMatcherThreshold,
		},
		Workflow: Workflow{
			Workers:            defaultWorkers,
			QueuePollInterval:  defaultQueuePollInterval,
			ErrorRetryInterval: defaultErrorRetryInterval,
			SettleSeconds:      defaultSettleSeconds,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
	}
}
