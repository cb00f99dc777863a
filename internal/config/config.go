package config

import (
	"errors"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	Server      struct {
		Port            string `env:"PORT" envDefault:"3000"`
		ReadTimeout     int    `env:"READ_TIMEOUT" envDefault:"10"`
		WriteTimeout    int    `env:"WRITE_TIMEOUT" envDefault:"15"`
		IdleTimeout     int    `env:"IDLE_TIMEOUT" envDefault:"60"`
		ShutdownTimeout int    `env:"SHUTDOWN_TIMEOUT" envDefault:"10"`
	} `envPrefix:"SERVER_"`
	Database struct {
		DSN                string `env:"DSN,required"`
		ConnectTimeout     int    `env:"CONNECT_TIMEOUT" envDefault:"10"`
		QueryTimeout       int    `env:"QUERY_TIMEOUT" envDefault:"10"`
		TransactionTimeout int    `env:"TRANSACTION_TIMEOUT" envDefault:"20"`
		MaxOpenConns       int    `env:"MAX_OPEN_CONNS" envDefault:"10"`
		MaxIdleConns       int    `env:"MAX_IDLE_CONNS" envDefault:"10"`
		MaxIdleTime        int    `env:"MAX_IDLE_TIME" envDefault:"60"`
	} `envPrefix:"DATABASE_"`
	Schedule struct {
		// 全系统唯一的民用时区，“今天是星期几”和学期周数都按它计算，
		// 各处不允许再自行指定时区字符串
		Timezone string `env:"TIMEZONE" envDefault:"Asia/Shanghai"`
	} `envPrefix:"SCHEDULE_"`
	InitialSettings struct {
		SchoolName    string `env:"SCHOOL_NAME" envDefault:"未来中学"`
		ManagerName   string `env:"MANAGER_NAME" envDefault:"王校长"`
		// 留空则初始化时随机生成并打印到日志
		AdminPassword string `env:"ADMIN_PASSWORD"`
	} `envPrefix:"INITIAL_SETTINGS_"`
	JWT struct {
		Expiration int    `env:"EXPIRATION" envDefault:"21600"` // 6 小时
		Secret     string `env:"SECRET,required"`
	} `envPrefix:"JWT_"`
	RabbitMQ struct {
		DSN            string `env:"DSN,required"`
		PublishTimeout int    `env:"PUBLISH_TIMEOUT" envDefault:"10"`
	} `envPrefix:"RABBITMQ_"`
	Redis struct {
		Host                string `env:"HOST" envDefault:"localhost"`
		Port                int    `env:"PORT" envDefault:"6379"`
		Password            string `env:"PASSWORD,required"`
		OperationExpiration int    `env:"OPERATION_EXPIRATION" envDefault:"10"`
	} `envPrefix:"REDIS_"`
	Login struct {
		MaxAttempts   int `env:"MAX_ATTEMPTS" envDefault:"5"`
		LockoutWindow int `env:"LOCKOUT_WINDOW" envDefault:"900"` // 秒
	} `envPrefix:"LOGIN_"`
	Notification struct {
		ManagerEmail string `env:"MANAGER_EMAIL"` // 为空则不发送上课方式变更通知
	} `envPrefix:"NOTIFICATION_"`
	Email struct {
		SMTP struct {
			Username    string `env:"USERNAME,required"`
			Password    string `env:"PASSWORD,required"`
			Host        string `env:"HOST,required"`
			Port        int    `env:"PORT" envDefault:"465"`
			DialTimeout int    `env:"DIAL_TIMEOUT" envDefault:"10"`
		} `envPrefix:"SMTP_"`
	} `envPrefix:"EMAIL_"`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		aggErr := env.AggregateError{}
		if ok := errors.As(err, &aggErr); ok {
			// 只返回第一个错误使得日志更清晰
			return nil, aggErr.Errors[0]
		}
	}

	return cfg, nil
}

// Location 解析配置中的民用时区
func (cfg *Config) Location() (*time.Location, error) {
	return time.LoadLocation(cfg.Schedule.Timezone)
}
