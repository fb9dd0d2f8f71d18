package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
)

var RootCmd = &cobra.Command{
	Use:   "erd-builder",
	Short: "A dimensional model ER diagram toolkit",
	Long: `
  _____ ____  ____    ____        _ _     _           
 | ____|  _ \|  _ \  | __ ) _   _(_) | __| | ___ _ __ 
 |  _| | |_) | | | | |  _ \| | | | | |/ _' |/ _ \ '__|
 | |___|  _ <| |_| | | |_) | |_| | | | (_| |  __/ |   
 |_____|_| \_\____/  |____/ \__,_|_|_|\__,_|\___|_|   

ERD Builder - DDL import, star schema layout and export
`,
	SilenceUsage: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	RootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./erd-builder.yaml)")

	viper.SetDefault("layout.mode", "force")
	viper.SetDefault("export.format", "sql")
	viper.SetDefault("export.sample_rows", 0)
	viper.SetDefault("server.addr", ":8080")
	viper.SetDefault("server.cors_origins", []string{"*"})
}

// initConfig reads in .env, the config file and ENV variables if set.
func initConfig() {
	// .env is optional
	_ = godotenv.Load()

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// 1. Executable Directory (Priority 1)
		ex, err := os.Executable()
		if err == nil {
			exePath := filepath.Dir(ex)
			viper.AddConfigPath(exePath)
		}

		// 2. Current Directory (Priority 2)
		viper.AddConfigPath(".")

		viper.SetConfigName("erd-builder")
		viper.SetConfigType("yaml")
	}

	// ERD_DATABASE_DSN -> database.dsn
	viper.SetEnvPrefix("erd")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
