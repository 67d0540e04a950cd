package content

func heading(s string) Line { return Line{Kind: Heading, Text: s} }

func para(s string) Line { return Line{Kind: Paragraph, Text: s} }

func list(items ...string) Line { return Line{Kind: List, Items: items} }

// Default returns the built-in thesis text.
func Default() Set {
	return Set{
		Letter: Letter{
			Top:    "High Conviction...",
			Middle: "Web3 Thesis...",
			Bottom: "2024...",
		},
		Title: Title{
			Lines:    []string{"High Conviction", "Web3 Thesis", "2021"},
			Revealed: "2024",
		},
		Inner: Face{
			Primary: Block{Lines: []Line{
				heading("1. DeFi 2.0 Innovations"),
				para("First-generation DeFi protocols have revealed both the potential and limitations of " +
					"decentralized finance. Key trends for 2021-2022:"),
				list(
					"Protocol-Owned Liquidity (POL): OlympusDAO model",
					"Fixed-Rate Lending: Element, Notional Finance",
					"Real-World Asset (RWA) Integration",
				),
				para("Institutional DeFi adoption is accelerating, with regulated entities seeking exposure " +
					"through permissioned pools and KYC-compliant protocols."),
				para("Cross-chain interoperability solutions are becoming critical infrastructure, " +
					"enabling capital efficiency across multiple blockchains."),
			}},
			Alternate: Block{Lines: []Line{
				heading("Hidden Insights: The Future"),
				para("As we look beyond the current landscape, several emerging trends become apparent:"),
				list(
					"Sovereign Identity Systems",
					"Zero-Knowledge Applications",
					"Decentralized Physical Infrastructure",
				),
				para("The convergence of these technologies will enable new forms of coordination " +
					"and value creation that were previously impossible."),
			}},
		},
		Back: Face{
			Primary: Block{Lines: []Line{
				heading("2. NFTs: Beyond Digital Art"),
				para("While 2021 has seen explosive growth in NFT art and collectibles, we believe the true potential " +
					"of NFTs lies in their utility for digital ownership and access rights. Key developments:"),
				list(
					"Gaming & Virtual Worlds: Play-to-earn models pioneered by Axie Infinity",
					"Social Tokens: Community engagement and governance rights",
					"Metaverse Land: Digital real estate and virtual experiences",
				),
				para("The composability of NFTs with DeFi protocols (NFTFi) creates new possibilities for " +
					"collateralization and fractionalization of high-value digital assets."),
				heading("3. Layer 2 Scaling Solutions"),
				para("Ethereum's scaling challenges have accelerated the development and adoption of L2 solutions:"),
				list(
					"Optimistic Rollups: Arbitrum, Optimism",
					"ZK-Rollups: StarkWare, zkSync",
				),
			}},
			Alternate: Block{Lines: []Line{
				heading("4. Emerging Infrastructure"),
				para("The next wave of Web3 infrastructure is taking shape:"),
				list(
					"Decentralized Storage: Filecoin, Arweave",
					"Cross-chain Messaging: LayerZero, Axelar",
					"Privacy Solutions: Aztec, Mina Protocol",
				),
				para("These foundational layers will enable the next generation of " +
					"scalable and interoperable Web3 applications."),
			}},
		},
	}
}
