// Package collectors turns live simulation state into metric families.
//
// Each collector implements registry.Collector and produces its families
// fresh on every scrape. Counting collectors group objects with the
// aggregate package; objects that cannot be classified are left out.
//
// Family names and label sets are stable and are what dashboards query:
//
//	mc_entities_total{dim,dim_id,id,type}
//	mc_dimension_tileentities{id,name}
//	mc_dimension_tileentities_detailed{dim_id,dim,te_class,te_name}
//	mc_dimension_chunks_loaded{id,name}
//	mc_player_list{id,name,dim_id,dim}
//	mc_player_stat_total{code,name,player_id,player_name}
//	mc_teams_chunk_claims{team_id,team_name,team_type,dim_id,dim_name}
//	mc_teams_chunk_loads{team_id,team_name,team_type,dim_id,dim_name}
//	mc_teams_players{team_id,team_name,player_uuid,player_name}
//	mc_server_tick_seconds
//	mc_dimension_tick_seconds{id,name}
//	mc_server_ticks_total_counter
package collectors
