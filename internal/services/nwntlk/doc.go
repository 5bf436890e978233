// Package nwntlk wraps the external nwn_tlk converter so the build can turn
// JSON string-table documents into binary TLK files and back.
//
// It exposes a Client interface and a CLI implementation; tests can swap in
// fakes to avoid executing the real converter while still exercising build
// behaviour.
package nwntlk
