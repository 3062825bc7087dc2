// Package lmp decomposes a solved dispatch into Locational Marginal
// Prices and per-injector line flows.
//
// The LMP at a node is the marginal cost of serving one extra MW of demand
// there: a system-wide energy price (the dual of the power-balance
// constraint) plus a congestion component contributed by every line whose
// flow limit is binding. The congestion sign follows from the KKT
// conditions of the dispatch LP, not from any particular solver backend's
// reporting convention: with multipliers μ⁺, μ⁻ ≥ 0 on the upper/lower
// flow rows,
//
//	LMP_n = λ − Σ_l (μ⁺_l − μ⁻_l) · PTDF[l][n]
//
// When duals are unavailable (the dual solve failed or digressed from the
// primal objective) the energy price falls back to the marginal generator
// scan and LMPs flatten to that single price.
//
// Flow decomposition superposes per-injector contributions: each injector
// (generator output plus shed load, which acts as local generation)
// contributes PTDF·(q_i·e_i − (q_i/Σq)·d). Because Σq equals total demand
// exactly, the contributions sum to the total line flow identically.
package lmp
