// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreateElectionRequest: position, candidate_name, votes, daily_increment, start_date
  - UpdateElectionRequest: candidate_name, votes, daily_increment
  - CastBallotRequest: candidate_id
  - UpdateDonationSettingsRequest: total_raised, target_goal, total_donors, avg_per_mosque

# Response Types

Types for JSON responses:

  - PositionStandings: position and its candidates' displayed counts
  - Standing: one candidate's displayed count and leading flag
  - CastBallotResponse: ballot_id, displayed, synced, message
  - DonationSettingsResponse: settings plus percent_of_goal
  - ErrorResponse: error, message

# Domain Types

Rows of the relational store:

  - Election: candidate tally inputs as edited by the back office
  - DonationSettings: donation progress figures
  - Donation: a single donation

Public responses never carry the raw votes or base_votes of a candidate;
displayed counts come from the tally engine only.
*/
package models
