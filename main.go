package main

import (
	"context"
	"encoding/base64"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	easy "github.com/t-tomalak/logrus-easy-formatter"
	"github.com/tsinghua-fib-lab/agentsociety-econsim/ecosim"
	"github.com/tsinghua-fib-lab/agentsociety-econsim/ensemble"
	"github.com/tsinghua-fib-lab/agentsociety-econsim/task"
	"github.com/tsinghua-fib-lab/agentsociety-econsim/utils/config"
	"github.com/tsinghua-fib-lab/agentsociety-econsim/utils/output"
)

var (
	// 查询服务监听地址，设置为空则不启动
	listenAddr = flag.String("listen", "", "RPC listening address (empty means disabled), e.g. :51102")
	// 配置文件路径
	configPath = flag.String("config", "", "config file path")
	// 配置文件Base64编码后的数据
	configData = flag.String("config-data", "", "config file base64 encoded data")
	// 并行运行的副本数，副本i的种子为 seed+i
	replicas = flag.Int("replicas", 1, "number of independent replicas")

	// log
	logLevels = map[string]logrus.Level{
		"trace":    logrus.TraceLevel,
		"debug":    logrus.DebugLevel,
		"info":     logrus.InfoLevel,
		"warn":     logrus.WarnLevel,
		"error":    logrus.ErrorLevel,
		"critical": logrus.FatalLevel,
		"off":      logrus.PanicLevel,
	}
	logLevel = flag.String("log.level", "info", "日志级别（可选项：trace debug info warn error critical off）")

	log = logrus.WithField("module", "econsim")
)

// loadConfig 读取配置，两者都未指定时使用默认配置
func loadConfig() config.Config {
	var file []byte
	var err error
	if *configPath != "" {
		file, err = os.ReadFile(*configPath)
		if err != nil {
			log.Panicf("config file load err: %v", err)
		}
	} else if *configData != "" {
		file, err = base64.StdEncoding.DecodeString(*configData)
		if err != nil {
			log.Panicf("config data load err: %v", err)
		}
	} else {
		log.Warn("no config specified, use defaults")
		return config.Default()
	}
	c, err := config.Parse(file)
	if err != nil {
		log.Panicf("config file load err: %v", err)
	}
	return c
}

func serve(ctx context.Context, rec *ecosim.Recorder) {
	if *listenAddr == "" {
		return
	}
	go func() {
		if err := ecosim.RunServer(ctx, *listenAddr, rec); err != nil {
			log.Errorf("server: %v", err)
		}
	}()
}

func main() {
	flag.Parse()
	logrus.SetFormatter(&easy.Formatter{
		TimestampFormat: "2006-01-02 15:04:05.0000",
		LogFormat:       "[%module%] [%time%] [%lvl%] %msg%\n",
	})
	// log: 运行时才修改
	if level, ok := logLevels[*logLevel]; ok {
		logrus.SetLevel(level)
	} else {
		log.Panicf("log.level must be one of %v", logLevels)
	}
	c := loadConfig()
	log.Infof("%+v", c)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var writer *output.Writer
	if c.Output.URI != "" {
		var err error
		if writer, err = output.New(ctx, c.Output, c.Control.Seed); err != nil {
			log.Panicf("output init err: %v", err)
		}
		defer func() {
			if err := writer.Close(context.Background()); err != nil {
				log.Errorf("output close err: %v", err)
			}
		}()
	}

	var err error
	if *replicas <= 1 {
		t := task.NewContext(c)
		if writer != nil {
			t.AddSink(writer)
		}
		serve(ctx, t.Recorder())
		err = t.Run(ctx)
	} else {
		opts := ensemble.Options{
			Replicas: *replicas,
			Limit:    *replicas,
			OnStart: func(replica int, t *task.Context) {
				// 只为副本0提供查询
				if replica == 0 {
					serve(ctx, t.Recorder())
				}
			},
		}
		if writer != nil {
			opts.Sink = func(replica int, seed uint64) task.Sink {
				return writer.Replica(replica, seed)
			}
		}
		var results []ensemble.Result
		results, err = ensemble.Run(ctx, c, opts)
		for _, r := range results {
			log.Infof(
				"replica %d (seed %d): unemployment %.2f%%, mean wage %.2f, mean price %.2f",
				r.Replica, r.Seed, r.Final.UnemploymentRate*100, r.Final.MeanWage, r.Final.MeanPrice,
			)
		}
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Errorf("simulation err: %v", err)
	}
}
