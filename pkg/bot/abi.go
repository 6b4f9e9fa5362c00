package bot

// MartinaAI trading bot contract interface. The contract is already
// deployed and immutable; these signatures must match its ABI exactly,
// including the output ordering of getOrder.
const contractABI = `[
  {"type":"function","name":"placeOrder","stateMutability":"nonpayable",
   "inputs":[
     {"name":"tokenIn","type":"address"},
     {"name":"tokenOut","type":"address"},
     {"name":"amountIn","type":"uint256"},
     {"name":"amountOutMin","type":"uint256"},
     {"name":"deadline","type":"uint256"}],
   "outputs":[{"name":"orderId","type":"uint256"}]},
  {"type":"function","name":"executeOrder","stateMutability":"nonpayable",
   "inputs":[{"name":"orderId","type":"uint256"}],"outputs":[]},
  {"type":"function","name":"cancelOrder","stateMutability":"nonpayable",
   "inputs":[{"name":"orderId","type":"uint256"}],"outputs":[]},
  {"type":"function","name":"executeSwapDirect","stateMutability":"nonpayable",
   "inputs":[
     {"name":"tokenIn","type":"address"},
     {"name":"tokenOut","type":"address"},
     {"name":"amountIn","type":"uint256"},
     {"name":"amountOutMin","type":"uint256"},
     {"name":"deadline","type":"uint256"}],
   "outputs":[]},
  {"type":"function","name":"getOrder","stateMutability":"view",
   "inputs":[{"name":"orderId","type":"uint256"}],
   "outputs":[
     {"name":"tokenIn","type":"address"},
     {"name":"tokenOut","type":"address"},
     {"name":"amountIn","type":"uint256"},
     {"name":"amountOutMin","type":"uint256"},
     {"name":"deadline","type":"uint256"},
     {"name":"filled","type":"bool"},
     {"name":"cancelled","type":"bool"},
     {"name":"placedAtBlock","type":"uint256"}]},
  {"type":"function","name":"orderCounter","stateMutability":"view",
   "inputs":[],"outputs":[{"name":"","type":"uint256"}]},
  {"type":"function","name":"martinaOperator","stateMutability":"view",
   "inputs":[],"outputs":[{"name":"","type":"address"}]},
  {"type":"function","name":"router","stateMutability":"view",
   "inputs":[],"outputs":[{"name":"","type":"address"}]},
  {"type":"function","name":"treasury","stateMutability":"view",
   "inputs":[],"outputs":[{"name":"","type":"address"}]},
  {"type":"function","name":"vault","stateMutability":"view",
   "inputs":[],"outputs":[{"name":"","type":"address"}]},
  {"type":"function","name":"botPaused","stateMutability":"view",
   "inputs":[],"outputs":[{"name":"","type":"bool"}]},
  {"type":"function","name":"genesisBlock","stateMutability":"view",
   "inputs":[],"outputs":[{"name":"","type":"uint256"}]}
]`

// Minimal ERC-20 fragment used for the decimals lookup.
const erc20DecimalsABI = `[
  {"type":"function","name":"decimals","stateMutability":"view",
   "inputs":[],"outputs":[{"name":"","type":"uint8"}]}
]`
