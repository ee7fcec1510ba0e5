package main

import (
	"time"

	"agari/runtime/game/quiz"

	"github.com/spf13/cobra"
)

var quizFlags struct {
	count int
	seed  int64
}

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "生成算点与听牌练习题",
	RunE: func(cmd *cobra.Command, args []string) error {
		seed := quizFlags.seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		questions, err := quiz.NewGenerator(seed).Batch(quizFlags.count)
		if err != nil {
			return err
		}
		return printJSON(questions)
	},
}

func init() {
	quizCmd.Flags().IntVar(&quizFlags.count, "count", 5, "题目数量")
	quizCmd.Flags().Int64Var(&quizFlags.seed, "seed", 0, "随机种子，0 表示按当前时间")
}
