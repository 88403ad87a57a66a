package config

import (
	"fmt"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Flag values win over environment variables; environment variables
// win over flag defaults (standard viper precedence for bound pflags).

const defaultUserAgent = "sitepush/1.0 (+https://github.com/bonanweb/sitepush)"

// ExtractConfig configures the sitemap extractor tool.
type ExtractConfig struct {
	SitemapURL string        `mapstructure:"sitemap"`
	Output     string        `mapstructure:"output"`
	UserAgent  string        `mapstructure:"user-agent"`
	Timeout    time.Duration `mapstructure:"timeout"`
	Delay      time.Duration `mapstructure:"delay"`
	Verbose    bool          `mapstructure:"verbose"`
	LogFile    string        `mapstructure:"log-file"`
}

// BaiduConfig configures the Baidu submitter tool.
type BaiduConfig struct {
	Site     string        `mapstructure:"site"`
	Token    string        `mapstructure:"token"`
	URLsFile string        `mapstructure:"urls-file"`
	Random   int           `mapstructure:"random"`
	Endpoint string        `mapstructure:"endpoint"`
	Timeout  time.Duration `mapstructure:"timeout"`
	Verbose  bool          `mapstructure:"verbose"`
	LogFile  string        `mapstructure:"log-file"`
}

// BingConfig configures the Bing submitter tool.
type BingConfig struct {
	Site     string        `mapstructure:"site"`
	APIKey   string        `mapstructure:"api-key"`
	URLsFile string        `mapstructure:"urls-file"`
	Random   int           `mapstructure:"random"`
	Endpoint string        `mapstructure:"endpoint"`
	Timeout  time.Duration `mapstructure:"timeout"`
	Verbose  bool          `mapstructure:"verbose"`
	LogFile  string        `mapstructure:"log-file"`
}

func LoadExtractConfig(args []string) (*ExtractConfig, error) {
	fs := pflag.NewFlagSet("extract", pflag.ContinueOnError)
	fs.String("sitemap", "", "sitemap, sitemap index or robots.txt URL")
	fs.String("output", "urls.txt", "output file for the extracted URLs")
	fs.String("user-agent", defaultUserAgent, "User-Agent header for sitemap fetches")
	fs.Duration("timeout", 30*time.Second, "HTTP timeout per fetch")
	fs.Duration("delay", 500*time.Millisecond, "delay between child sitemap fetches")
	fs.Bool("verbose", false, "enable debug logging")
	fs.String("log-file", "extract_sitemap.log", "log file path")

	v, err := bind(fs, args, map[string]string{"sitemap": "SITEMAP_URL"})
	if err != nil {
		return nil, err
	}

	var cfg ExtractConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if cfg.SitemapURL == "" {
		return nil, fmt.Errorf("sitemap URL is required: set --sitemap or SITEMAP_URL")
	}
	return &cfg, nil
}

func LoadBaiduConfig(args []string) (*BaiduConfig, error) {
	fs := pflag.NewFlagSet("baidupush", pflag.ContinueOnError)
	fs.String("site", "", "site URL registered with Baidu webmaster tools")
	fs.String("token", "", "Baidu webmaster push token")
	fs.String("urls-file", "urls.txt", "file with URLs to submit, one per line")
	fs.Int("random", 0, "submit a random sample of this many URLs (0 = no sampling)")
	fs.String("endpoint", "", "override the Baidu push endpoint")
	fs.Duration("timeout", 30*time.Second, "HTTP timeout for the push call")
	fs.Bool("verbose", false, "enable debug logging")
	fs.String("log-file", "submit_baidu.log", "log file path")

	v, err := bind(fs, args, map[string]string{"site": "SITE_URL", "token": "BAIDU_TOKEN"})
	if err != nil {
		return nil, err
	}

	var cfg BaiduConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func LoadBingConfig(args []string) (*BingConfig, error) {
	fs := pflag.NewFlagSet("bingpush", pflag.ContinueOnError)
	fs.String("site", "", "site URL registered with Bing webmaster tools")
	fs.String("api-key", "", "Bing webmaster API key")
	fs.String("urls-file", "urls.txt", "file with URLs to submit, one per line")
	fs.Int("random", 0, "submit a random sample of this many URLs (0 = no sampling)")
	fs.String("endpoint", "", "override the Bing batch endpoint")
	fs.Duration("timeout", 30*time.Second, "HTTP timeout for the push call")
	fs.Bool("verbose", false, "enable debug logging")
	fs.String("log-file", "submit_bing.log", "log file path")

	v, err := bind(fs, args, map[string]string{"site": "SITE_URL", "api-key": "BING_API_KEY"})
	if err != nil {
		return nil, err
	}

	var cfg BingConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// bind parses the flags and wires them into a viper instance together
// with their environment-variable fallbacks.
func bind(fs *pflag.FlagSet, args []string, envs map[string]string) (*viper.Viper, error) {
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()
	if err := v.BindPFlags(fs); err != nil {
		return nil, err
	}
	for key, env := range envs {
		if err := v.BindEnv(key, env); err != nil {
			return nil, err
		}
	}
	return v, nil
}
