// Package config loads the exporter configuration from YAML.
//
// Keys omitted from the file keep the values returned by Default:
//
//	web:
//	  listen_address: 0.0.0.0
//	  listen_port: 19565
//	collector:
//	  runtime: true
//	  entities: true
//	  tileentities: true
//	  tileentities_details: false
//	  ticks: true
//	  tick_errors: log
//	  chunks: true
//	  players: true
//	  player_statistics: true
//	  teams: true
//	  command_permission_level: 3
package config
