package main

import (
	"context"
	"fmt"
	"os"

	"agari/common/config"
	"agari/common/log"
	"agari/common/metrics"
	"agari/core/container"
	"agari/gate/app"

	"github.com/spf13/cobra"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "agari",
	Short: "立直麻将算点服务",
	Long:  `立直麻将和牌判定、役种、符数与点数计算`,
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "启动 HTTP 算点服务",
	Run: func(cmd *cobra.Command, args []string) {
		conf, err := config.Load(configFile)
		if err != nil {
			log.Fatal("文件配置发生错误：%v", err)
		}
		log.InitLog(conf.AppName, conf.Log.Level)
		log.Info("配置文件: %+v", *conf)

		if conf.MetricPort > 0 {
			go func() {
				log.Info("启动监控..., URL: http://localhost:%d/debug/statsviz/", conf.MetricPort)
				if err := metrics.Serve(fmt.Sprintf("0.0.0.0:%d", conf.MetricPort)); err != nil {
					log.Error("监控服务异常退出: %v", err)
				}
			}()
		}

		c, err := container.NewGateContainer(conf)
		if err != nil {
			log.Fatal("容器初始化失败: %v", err)
		}
		defer c.Close()

		if err := app.Run(context.Background(), conf, c); err != nil {
			log.Error("发生异常: %v", err)
			_ = c.Close()
			os.Exit(-1)
		}
	},
}

func init() {
	serveCmd.Flags().StringVar(&configFile, "configFile", "", "配置文件路径，为空时使用默认配置")
	rootCmd.AddCommand(serveCmd, scoreCmd, quizCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error("error happen: %v", err)
		os.Exit(1)
	}
}
